package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileSetCellByIDGrowsExtents(t *testing.T) {
	tile := NewTile()
	assert.Equal(t, 0, tile.Rows())
	assert.Equal(t, 0, tile.Cols())

	tile.SetCellByID(posToCellID(2, 3), Cell{Value: IntValue(7)})
	assert.Equal(t, 4, tile.Rows())
	assert.Equal(t, 3, tile.Cols())

	tile.SetCellByID(posToCellID(1, 1), Cell{Value: IntValue(1)})
	assert.Equal(t, 4, tile.Rows(), "extents never shrink")
	assert.Equal(t, 3, tile.Cols())
}

func TestTileGetSetCellByIDRoundTrip(t *testing.T) {
	tile := NewTile()
	id := posToCellID(0, 0)
	tile.SetCellByID(id, Cell{Value: IntValue(42), Formula: "42"})
	got := tile.GetCellByID(id)
	assert.Equal(t, "42", got.Value.String())
	assert.Equal(t, "42", got.Formula)
}

func TestTileCheckIDPanicsOutOfBounds(t *testing.T) {
	tile := NewTile()
	assert.Panics(t, func() {
		tile.GetCellByID(CellId(ColMax * RowMax))
	})
}

func TestTileTrackDepAndDependents(t *testing.T) {
	tile := NewTile()
	a := posToCellID(0, 0)
	b := posToCellID(1, 0)
	tile.TrackDep(b, a) // b reads a

	deps := tile.Dependents(a)
	require.Len(t, deps, 1)
	assert.Equal(t, b, deps[0])
}

func TestTileResetUpstreamEdges(t *testing.T) {
	tile := NewTile()
	a := posToCellID(0, 0)
	b := posToCellID(1, 0)
	c := posToCellID(2, 0)
	tile.TrackDep(b, a)
	tile.TrackDep(b, c)

	tile.resetUpstreamEdges(b)

	assert.Empty(t, tile.Dependents(a))
	assert.Empty(t, tile.Dependents(c))
}

func TestTileAddColumnAddRow(t *testing.T) {
	tile := NewTile()
	tile.AddColumn()
	tile.AddRow()
	assert.Equal(t, 1, tile.Cols())
	assert.Equal(t, 1, tile.Rows())
}

func TestTileRenderRowMajor(t *testing.T) {
	tile := NewTile()
	tile.SetCellByID(posToCellID(0, 0), Cell{Value: IntValue(1)})
	tile.SetCellByID(posToCellID(1, 0), Cell{Value: IntValue(2)})
	tile.SetCellByID(posToCellID(0, 1), Cell{Value: IntValue(3)})
	tile.SetCellByID(posToCellID(1, 1), Cell{Value: IntValue(4)})

	rendered := tile.render()
	require.Len(t, rendered, 4)
	assert.Equal(t, "1", rendered[0].Cell.Value.String())
	assert.Equal(t, "2", rendered[1].Cell.Value.String())
	assert.Equal(t, "3", rendered[2].Cell.Value.String())
	assert.Equal(t, "4", rendered[3].Cell.Value.String())
}
