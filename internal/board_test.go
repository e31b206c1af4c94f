package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardAddTileSeedsDemo(t *testing.T) {
	b := NewBoard()
	added := b.AddTile()

	require.Len(t, added.Tiles, 1)
	tile := added.Tiles[0]
	assert.Equal(t, 2, tile.Rows)
	assert.Equal(t, 2, tile.Cols)
}

func TestBoardUpdateCellUnknownTile(t *testing.T) {
	b := NewBoard()
	snap := b.UpdateCell(TileId(99), PosRef(0, 0), "1")
	assert.Empty(t, snap.Tiles)
}

func TestBoardAddColumnAddRowUnknownTile(t *testing.T) {
	b := NewBoard()
	assert.Empty(t, b.AddColumn(TileId(99)).Tiles)
	assert.Empty(t, b.AddRow(TileId(99)).Tiles)
}

func TestBoardMultipleTilesPreserveOrder(t *testing.T) {
	b := NewBoard()
	firstSnap := b.AddTile()
	first := firstSnap.Tiles[len(firstSnap.Tiles)-1].ID
	secondSnap := b.AddTile()
	second := secondSnap.Tiles[len(secondSnap.Tiles)-1].ID

	snap := b.Snapshot()
	require.Len(t, snap.Tiles, 2)
	assert.Equal(t, first, snap.Tiles[0].ID)
	assert.Equal(t, second, snap.Tiles[1].ID)
}

func TestBoardUpdateCellThenSnapshotReflectsChange(t *testing.T) {
	b := NewBoard()
	added := b.AddTile()
	id := added.Tiles[len(added.Tiles)-1].ID

	snap := b.UpdateCell(id, PosRef(3, 3), "100")
	tile := snap.Tiles[0]
	idx := 3*tile.Cols + 3
	require.Less(t, idx, len(tile.Cells))
	assert.Equal(t, "100", tile.Cells[idx].Value.Text)
}

func TestBoardConcurrentReadsDoNotRace(t *testing.T) {
	b := NewBoard()
	added := b.AddTile()
	id := added.Tiles[len(added.Tiles)-1].ID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = b.Snapshot()
			_ = b.UpdateCell(id, PosRef(n%ColMax, 5), "1")
		}(i)
	}
	wg.Wait()
}
