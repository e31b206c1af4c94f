package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueToUiTypeOrdering(t *testing.T) {
	assert.Equal(t, TypeUiNumber, valueToUi(NumValue(parseDecimal("1"))).Type)
	assert.Equal(t, TypeUiBoolean, valueToUi(BoolValue(true)).Type)
	assert.Equal(t, TypeUiFloat, valueToUi(FloatValue(1.5)).Type)
	assert.Equal(t, TypeUiInt, valueToUi(IntValue(1)).Type)
	assert.Equal(t, TypeUiString, valueToUi(StrValue("x")).Type)
	assert.Equal(t, TypeUiList, valueToUi(ListValue(nil)).Type)
	assert.Equal(t, TypeUiArray, valueToUi(ArrayValueOf(Array{})).Type)
	assert.Equal(t, TypeUiRecord, valueToUi(RecordValueOf(Record{})).Type)
}

func TestValueToUiListItemsPopulated(t *testing.T) {
	v := ListValue([]Value{IntValue(1), IntValue(2)})
	ui := valueToUi(v)
	require.Len(t, ui.Items, 2)
	assert.Equal(t, "1", ui.Items[0].Text)
	assert.Equal(t, "2", ui.Items[1].Text)
}

func TestTileSnapshotLabelsAndCells(t *testing.T) {
	tile := NewTile()
	tile.SetCellByID(posToCellID(0, 0), Cell{Value: IntValue(7), Formula: "7"})

	ui := tile.snapshot(TileId(3))
	assert.Equal(t, TileId(3), ui.ID)
	assert.Equal(t, []string{"A"}, ui.ColLabels)
	assert.Equal(t, []string{"1"}, ui.RowLabels)
	require.Len(t, ui.Cells, 1)
	assert.Equal(t, "7", ui.Cells[0].Value.Text)
	assert.Equal(t, "7", ui.Cells[0].Formula)
}
