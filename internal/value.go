package internal

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Kind discriminates the closed set of Value variants. spec.md §9 asks for
// "a tagged union with an explicit discriminant and hand-written arithmetic
// dispatch over any form of open polymorphism" — Value is exactly that: one
// concrete struct, never an interface-per-variant.
type Kind uint8

const (
	KindNum Kind = iota
	KindInt
	KindFloat
	KindBool
	KindStr
	KindList
	KindArray
	KindRecord
)

// Array is the dense, row-major n-D container backing Value.Array.
// len(Values) must equal the product of Dims.
type Array struct {
	Values []Value
	Dims   []int
}

// Record holds 2*len(Values)/2 values interpreted as alternating key/value
// pairs; Fields is the pair count, so len(Values) == 2*Fields.
type Record struct {
	Values []Value
	Fields int
}

// Value is the spreadsheet's tagged-value algebra. The zero Value is
// Num(0) per spec.md §3: Kind's zero value is KindNum and apd.Decimal's
// zero value already prints as "0", so no constructor call is required to
// obtain the spec's default.
type Value struct {
	Kind   Kind
	Num    apd.Decimal
	Int    int64
	Float  float64
	Bool   bool
	Str    string
	List   []Value
	Array  Array
	Record Record
}

func NumValue(d apd.Decimal) Value { return Value{Kind: KindNum, Num: d} }
func IntValue(i int64) Value       { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value   { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func StrValue(s string) Value      { return Value{Kind: KindStr, Str: s} }
func ListValue(vs []Value) Value   { return Value{Kind: KindList, List: vs} }
func ArrayValueOf(a Array) Value   { return Value{Kind: KindArray, Array: a} }
func RecordValueOf(r Record) Value { return Value{Kind: KindRecord, Record: r} }
func numZero() Value               { return Value{Kind: KindNum} }

// String returns the total string form described in spec.md §3: scalars
// print the obvious decimal/boolean/string form (booleans lower-case),
// aggregates join elements with "," (Record formats pairs as "key:value").
func (v Value) String() string {
	switch v.Kind {
	case KindNum:
		return decimalString(v.Num)
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindStr:
		return v.Str
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	case KindArray:
		parts := make([]string, len(v.Array.Values))
		for i, e := range v.Array.Values {
			parts[i] = e.String()
		}
		return strings.Join(parts, ",")
	case KindRecord:
		n := v.Record.Fields
		parts := make([]string, 0, n)
		for i := 0; i < n; i++ {
			key := v.Record.Values[2*i]
			val := v.Record.Values[2*i+1]
			parts = append(parts, key.String()+":"+val.String())
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// ToDecimal is a total conversion: scalars convert, aggregates yield the
// spec's default (Num(0)) per spec.md §9.
func (v Value) ToDecimal() apd.Decimal {
	switch v.Kind {
	case KindNum:
		return v.Num
	case KindInt:
		return decimalFromInt64(v.Int)
	case KindFloat:
		return decimalFromFloat64(v.Float)
	case KindBool:
		return decimalFromBool(v.Bool)
	default:
		return apd.Decimal{}
	}
}

// ToInt64 is a total conversion; aggregates yield 0 per spec.md §9.
func (v Value) ToInt64() int64 {
	switch v.Kind {
	case KindNum:
		return decimalToInt64(v.Num)
	case KindInt:
		return v.Int
	case KindFloat:
		return int64(v.Float)
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ToStr is a total conversion; aggregates use the comma-joined String()
// form per spec.md §9 ("a comma-joined form for the string conversion").
func (v Value) ToStr() string {
	if v.Kind == KindStr {
		return v.Str
	}
	return v.String()
}

func (v Value) isNumericScalar() bool {
	switch v.Kind {
	case KindNum, KindInt, KindFloat, KindBool:
		return true
	default:
		return false
	}
}

// applyBinOp implements the §4.1 coercion closure: unmatched shape pairs
// total out to Num(0) rather than erroring. Arg order is preserved in
// every broadcast and in every decimal operation, per spec.md §9's Open
// Question resolution.
func applyBinOp(op byte, x, y Value) Value {
	if x.Kind == KindStr || y.Kind == KindStr {
		return numZero() // non-goal: string arithmetic, spec.md §4.1
	}
	// Broadcast requires the scalar side to be specifically Num, matching
	// the literal closure rule "(List, Num) -> List"; a list paired with
	// a non-Num scalar (Int/Float/Bool/another List/Array/Record) is an
	// unmatched shape, not a broadcast.
	if x.Kind == KindList && y.Kind == KindNum {
		return broadcastList(op, x.List, y, true)
	}
	if y.Kind == KindList && x.Kind == KindNum {
		return broadcastList(op, y.List, x, false)
	}
	if x.Kind == KindNum && y.isNumericScalar() {
		return NumValue(decimalOp(op, x.ToDecimal(), y.ToDecimal()))
	}
	if y.Kind == KindNum && x.isNumericScalar() {
		return NumValue(decimalOp(op, x.ToDecimal(), y.ToDecimal()))
	}
	return numZero()
}

// broadcastList applies op element-wise between a list and a scalar.
// listIsLeft tracks which operand was the list so the original argument
// order is reproduced for every element, e.g. (List,Num) computes
// elem-scalar while (Num,List) computes scalar-elem.
func broadcastList(op byte, list []Value, scalar Value, listIsLeft bool) Value {
	out := make([]Value, len(list))
	for i, e := range list {
		if listIsLeft {
			out[i] = applyBinOp(op, e, scalar)
		} else {
			out[i] = applyBinOp(op, scalar, e)
		}
	}
	return ListValue(out)
}

func decimalOp(op byte, x, y apd.Decimal) apd.Decimal {
	switch op {
	case '+':
		return addDecimal(x, y)
	case '-':
		return subDecimal(x, y)
	case '*':
		return mulDecimal(x, y)
	case '/':
		return quoDecimal(x, y)
	default:
		return apd.Decimal{}
	}
}

// negate implements unary minus for the Num/Int/Float scalar kinds and
// maps Bool to Num(-1) or Num(0); other kinds total out to Num(0),
// matching applyBinOp's unmatched-shape policy.
func negate(v Value) Value {
	switch v.Kind {
	case KindNum:
		return NumValue(subDecimal(apd.Decimal{}, v.Num))
	case KindInt:
		return IntValue(-v.Int)
	case KindFloat:
		return FloatValue(-v.Float)
	case KindBool:
		return NumValue(subDecimal(apd.Decimal{}, decimalFromBool(v.Bool)))
	default:
		return numZero()
	}
}
