package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueZeroIsNumZero(t *testing.T) {
	var v Value
	assert.Equal(t, KindNum, v.Kind)
	assert.Equal(t, "0", v.String())
}

func TestValueStringScalars(t *testing.T) {
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
	assert.Equal(t, "hi", StrValue("hi").String())
}

func TestValueStringAggregates(t *testing.T) {
	l := ListValue([]Value{IntValue(1), IntValue(2), IntValue(3)})
	assert.Equal(t, "1,2,3", l.String())

	r := RecordValueOf(Record{
		Fields: 2,
		Values: []Value{StrValue("a"), IntValue(1), StrValue("b"), IntValue(2)},
	})
	assert.Equal(t, "a:1,b:2", r.String())
}

func TestApplyBinOpNumeric(t *testing.T) {
	x := NumValue(parseDecimal("3"))
	y := NumValue(parseDecimal("4"))
	sum := applyBinOp('+', x, y)
	require.Equal(t, KindNum, sum.Kind)
	assert.Equal(t, "7", sum.String())
}

func TestApplyBinOpNumPlusOtherScalarKinds(t *testing.T) {
	// spec.md §4.1's closure only widens to Num when one side is already
	// Num; two non-Num scalars (e.g. Int and Bool) are an unmatched pair
	// that totals to Num(0), same as any other unmatched shape.
	sum := applyBinOp('+', NumValue(parseDecimal("3")), BoolValue(true))
	assert.Equal(t, KindNum, sum.Kind)
	assert.Equal(t, "4", sum.String())

	unmatched := applyBinOp('+', IntValue(3), BoolValue(true))
	assert.Equal(t, "0", unmatched.String())
}

func TestApplyBinOpBroadcastsOverList(t *testing.T) {
	list := ListValue([]Value{IntValue(1), IntValue(2), IntValue(3)})
	got := applyBinOp('*', list, NumValue(parseDecimal("10")))
	require.Equal(t, KindList, got.Kind)
	require.Len(t, got.List, 3)
	assert.Equal(t, "10", got.List[0].String())
	assert.Equal(t, "20", got.List[1].String())
	assert.Equal(t, "30", got.List[2].String())
}

func TestApplyBinOpBroadcastPreservesArgOrder(t *testing.T) {
	list := ListValue([]Value{IntValue(10), IntValue(20)})
	one := NumValue(parseDecimal("1"))
	listLeft := applyBinOp('-', list, one)
	scalarLeft := applyBinOp('-', one, list)

	assert.Equal(t, "9", listLeft.List[0].String())
	assert.Equal(t, "19", listLeft.List[1].String())
	assert.Equal(t, "-9", scalarLeft.List[0].String())
	assert.Equal(t, "-19", scalarLeft.List[1].String())
}

func TestApplyBinOpListWithNonNumScalarIsUnmatchedShape(t *testing.T) {
	// "(List, Num)" names Num specifically; a list paired with a non-Num
	// scalar is an unmatched pair like any other, not a broadcast.
	list := ListValue([]Value{IntValue(1), IntValue(2)})
	got := applyBinOp('+', list, IntValue(10))
	assert.Equal(t, KindNum, got.Kind)
	assert.Equal(t, "0", got.String())
}

func TestApplyBinOpUnmatchedShapeTotalsToZero(t *testing.T) {
	got := applyBinOp('+', StrValue("x"), IntValue(1))
	assert.Equal(t, KindNum, got.Kind)
	assert.Equal(t, "0", got.String())
}

func TestNegate(t *testing.T) {
	assert.Equal(t, "-5", negate(IntValue(5)).String())
	assert.Equal(t, "-1", negate(BoolValue(true)).String())
	assert.Equal(t, "0", negate(StrValue("x")).String())
}
