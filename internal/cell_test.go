package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroCellIsDefaultNum(t *testing.T) {
	var c Cell
	assert.Equal(t, "0", c.Value.String())
	assert.Empty(t, c.Formula)
	assert.Empty(t, c.Style)
}

func TestParseErrorCellHasNoFormula(t *testing.T) {
	c := parseErrorCell()
	assert.Equal(t, "error", c.Value.String())
	assert.Empty(t, c.Formula)
}

func TestEvalErrorCellRetainsFormula(t *testing.T) {
	c := evalErrorCell("[1,1]")
	assert.Equal(t, "error", c.Value.String())
	assert.Equal(t, "[1,1]", c.Formula)
}
