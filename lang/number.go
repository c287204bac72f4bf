package lang

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPrecision is the number of fractional digits [FormatNumber] keeps
// when called with a negative precision.
const DefaultPrecision = 10

// Magnitudes outside [expLow, expHigh) are written in exponent form, except
// whole numbers below maxExact, every one of which a float64 holds exactly.
const (
	expLow   = 1e-6
	expHigh  = 1e15
	maxExact = 1 << 53
)

// FormatNumber renders v for display.
//
// Whole numbers have no decimal point ("1200"). Other values are rounded to
// precision fractional digits and lose their trailing zeros ("0.5",
// "0.6666666667"). Whole numbers of magnitude below 2^53 keep every digit
// ("1234567890123456"). Other magnitudes of 1e15 or more, and those below
// 1e-6, use exponent form with precision significant digits ("1e+20").
// Negative zero renders as "0".
func FormatNumber(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}

	if v == 0 || math.IsNaN(v) {
		return "0"
	}

	var s string

	a := math.Abs(v)

	switch {
	case a < maxExact && a == math.Trunc(a):
		s = strconv.FormatFloat(v, 'f', 0, 64)
	case a < expLow || a >= expHigh:
		s = strconv.FormatFloat(v, 'g', max(precision, 1), 64)
	default:
		s = trimZeros(strconv.FormatFloat(v, 'f', precision, 64))
	}

	if s == "-0" {
		return "0"
	}

	return s
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	return strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
}
