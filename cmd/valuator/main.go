// Command valuator drives a single-board instance of the spreadsheet
// core from the terminal: it allocates one (demo-seeded) tile, runs one
// UpdateCell call, and prints the resulting snapshot.
package main

import (
	"fmt"

	"github.com/dacjames/valuator/internal"
)

func main() {
	log := internal.NewDevLogger()
	board := internal.NewBoard(internal.WithBoardLogger(log))

	added := board.AddTile()
	tileID := added.Tiles[len(added.Tiles)-1].ID

	snap := board.UpdateCell(tileID, internal.PosRef(2, 2), "3*7*(1+1)/2")
	printBoard(snap)
}

func printBoard(snap internal.BoardUi) {
	for _, tile := range snap.Tiles {
		fmt.Printf("tile %d (%d rows x %d cols)\n", tile.ID, tile.Rows, tile.Cols)
		for r := 0; r < tile.Rows; r++ {
			for c := 0; c < tile.Cols; c++ {
				cell := tile.Cells[r*tile.Cols+c]
				fmt.Printf("  %s%s = %s\n", tile.ColLabels[c], tile.RowLabels[r], cell.Value.Text)
			}
		}
	}
}
