package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalArithmetic(t *testing.T) {
	x := parseDecimal("10")
	y := parseDecimal("4")

	assert.Equal(t, "14", decimalString(addDecimal(x, y)))
	assert.Equal(t, "6", decimalString(subDecimal(x, y)))
	assert.Equal(t, "40", decimalString(mulDecimal(x, y)))
	assert.Equal(t, "2.5", decimalString(quoDecimal(x, y)))
}

func TestDecimalFromConversions(t *testing.T) {
	assert.Equal(t, "5", decimalString(decimalFromInt64(5)))
	assert.Equal(t, "1", decimalString(decimalFromBool(true)))
	assert.Equal(t, "0", decimalString(decimalFromBool(false)))
}

func TestDecimalToInt64(t *testing.T) {
	assert.Equal(t, int64(7), decimalToInt64(parseDecimal("7")))
}

func TestParseDecimalMalformedDegradesToZero(t *testing.T) {
	assert.Equal(t, "0", decimalString(parseDecimal("not-a-number")))
}
