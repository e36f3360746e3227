package format

import (
	"math"
	"strconv"
	"strings"
)

// significantDigits is the precision kept by Approximate.
const significantDigits = 2

// Approximate rounds v to two significant digits, half away from zero.
// It is significant-digit rounding, not decimal-place rounding:
//
//	Approximate(99.67)  // 100
//	Approximate(1234)   // 1200
//	Approximate(1.45)   // 1.5
//	Approximate(0.0034) // 0.0034
//
// Rounding works on the shortest decimal form of v, so a value written as
// 1.45 rounds up even though the nearest double lies just below it.
func Approximate(v float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	// "d.ddddde±x"
	mant, exp, _ := strings.Cut(strconv.FormatFloat(math.Abs(v), 'e', -1, 64), "e")
	digits := strings.Replace(mant, ".", "", 1)
	if len(digits) <= significantDigits {
		return v
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return v
	}

	kept, err := strconv.Atoi(digits[:significantDigits])
	if err != nil {
		return v
	}
	if digits[significantDigits] >= '5' {
		kept++
	}

	out, err := strconv.ParseFloat(strconv.Itoa(kept)+"e"+strconv.Itoa(e-(significantDigits-1)), 64)
	if err != nil {
		return v
	}
	return math.Copysign(out, v)
}
