package venture

import (
	"math"
	"unicode/utf16"
)

// Hash maps a seed to a deterministic value in [0,1).
//
// The seed's UTF-16 code units are folded into a multiply-by-31 rolling
// accumulator, then spread with sin(acc)*10000 and reduced to the
// fractional part. The shift wraps its operand to a signed 32-bit integer
// (two's-complement, modulo 2^32) while the subtrahend keeps full float64
// precision.
func Hash(seed string) float64 {
	var acc float64
	for _, unit := range utf16.Encode([]rune(seed)) {
		acc = float64(unit) + (float64(toInt32(acc)<<5) - acc)
	}

	x := math.Sin(acc) * 10000
	frac := x - math.Floor(x)
	if frac >= 1 {
		// x so close below an integer that the subtraction rounded up
		return 0
	}
	return frac
}

// toInt32 truncates f modulo 2^32 into the signed 32-bit range.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	return int32(uint32(int64(m)))
}
