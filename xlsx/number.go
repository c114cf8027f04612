package xlsx

import (
	"math"
	"math/big"
	"strconv"
)

// FormatNumber formats a measurement (row height, font size) for use in CSS:
// two decimals, '.' as separator, halves rounded away from zero.
//
// Rounding works on the shortest decimal form of v, so 12.345 gives "12.35"
// even though its binary value sits just below the midpoint.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		return "0.00"
	}
	if s := r.FloatString(2); s != "-0.00" {
		return s
	}
	return "0.00"
}
