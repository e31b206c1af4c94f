package internal

import (
	"github.com/cockroachdb/apd/v3"
)

// decimalPrecision bounds the working precision of every Num computation.
// Arbitrary-precision here means "more digits than float64 can hold", not
// literally unbounded; spec.md §1 explicitly excludes IEEE conformance at
// this boundary, so a fixed generous precision is sufficient.
const decimalPrecision = 40

// decCtx is the single apd.Context every Num operation is driven through.
var decCtx = apd.BaseContext.WithPrecision(decimalPrecision)

// parseDecimal parses a numeral's text (already recognised by the parser's
// num production) into a decimal. Malformed input should not reach here,
// since the parser only calls this on text its own grammar accepted, but a
// failure still degrades to a decimal zero rather than panicking.
func parseDecimal(s string) apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return apd.Decimal{}
	}
	return *d
}

// decimalFromInt64 is an exact, lossless conversion.
func decimalFromInt64(v int64) apd.Decimal {
	return *apd.New(v, 0)
}

// decimalFromFloat64 is best-effort; precision loss at the float64/decimal
// boundary is permitted by spec.md §4.1.
func decimalFromFloat64(v float64) apd.Decimal {
	var d apd.Decimal
	if _, err := d.SetFloat64(v); err != nil {
		return apd.Decimal{}
	}
	return d
}

// decimalFromBool maps true -> 1, false -> 0 per spec.md §4.1.
func decimalFromBool(b bool) apd.Decimal {
	if b {
		return decimalFromInt64(1)
	}
	return decimalFromInt64(0)
}

// addDecimal, subDecimal, mulDecimal, quoDecimal never return an error to
// their caller: spec.md §4.1 mandates the value algebra be total at this
// layer, and a decimal operation's condition/error (e.g. DivisionByZero)
// is deliberately discarded, with "whatever the decimal library produces"
// left in the result decimal per spec.md §4.1's explicit carve-out.
func addDecimal(x, y apd.Decimal) apd.Decimal {
	var d apd.Decimal
	_, _ = decCtx.Add(&d, &x, &y)
	return d
}

func subDecimal(x, y apd.Decimal) apd.Decimal {
	var d apd.Decimal
	_, _ = decCtx.Sub(&d, &x, &y)
	return d
}

func mulDecimal(x, y apd.Decimal) apd.Decimal {
	var d apd.Decimal
	_, _ = decCtx.Mul(&d, &x, &y)
	return d
}

func quoDecimal(x, y apd.Decimal) apd.Decimal {
	var d apd.Decimal
	_, _ = decCtx.Quo(&d, &x, &y)
	return d
}

// decimalToInt64 is a total conversion; non-representable decimals (too
// large, fractional beyond truncation the caller wants) fall back to 0.
func decimalToInt64(d apd.Decimal) int64 {
	v, err := d.Int64()
	if err != nil {
		return 0
	}
	return v
}

func decimalString(d apd.Decimal) string {
	return d.String()
}
