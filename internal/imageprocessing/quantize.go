package imageprocessing

import "math"

// Factor is a quantization factor: the number of steps each channel's
// [0,255] range is divided into. Valid factors are 1..255.
type Factor uint8

// NewFactor validates n as a quantization factor.
func NewFactor(n int) (Factor, error) {
	if n <= 0 || n > math.MaxUint8 {
		return 0, &InvalidFactorError{Factor: n}
	}
	return Factor(n), nil
}

// Quantize snaps channel to the nearest of factor+1 evenly spaced levels
// across [0,255] and returns that level as an 8-bit value.
//
// Both steps round half away from zero in float64:
//
//	level  = round(channel * factor / 255)
//	result = round(level * 255 / factor)
//
// Quantize panics on a zero factor; use NewFactor to validate caller input.
func Quantize(factor Factor, channel uint8) uint8 {
	if factor == 0 {
		panic("imageprocessing: quantize with zero factor")
	}
	f := float64(factor)
	level := math.Round(float64(channel) * f / 255)
	return uint8(math.Round(level * 255 / f))
}
