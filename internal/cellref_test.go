package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellIDPosRoundTrip(t *testing.T) {
	for col := 0; col < ColMax; col += 5 {
		for row := 0; row < RowMax; row += 7 {
			id := posToCellID(col, row)
			gotCol, gotRow := cellIDToPos(id)
			assert.Equal(t, col, gotCol)
			assert.Equal(t, row, gotRow)
		}
	}
}

func TestPosRefResolve(t *testing.T) {
	id, err := PosRef(2, 3).Resolve()
	require.NoError(t, err)
	assert.Equal(t, posToCellID(2, 3), id)
}

func TestPosRefOutOfBounds(t *testing.T) {
	_, err := PosRef(ColMax, 0).Resolve()
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestLabelRefResolve(t *testing.T) {
	tile := NewTile()
	ref, err := LabelRef("C", "2", tile)
	require.NoError(t, err)
	id, err := ref.Resolve()
	require.NoError(t, err)
	assert.Equal(t, posToCellID(2, 1), id)
}

func TestLabelRefUnknownLabel(t *testing.T) {
	tile := NewTile()
	_, err := LabelRef("ZZ", "2", tile)
	assert.ErrorIs(t, err, ErrParseCellID)
}

func TestIDRefResolve(t *testing.T) {
	id, err := IDRef(CellId(9)).Resolve()
	require.NoError(t, err)
	assert.Equal(t, CellId(9), id)
}
