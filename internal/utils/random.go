package utils

import "math/rand"

// RandomFloat returns a random float64 in [0.0, 1.0).
func RandomFloat() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// RandomInt returns a random integer between min and max (inclusive).
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return rand.Intn(max-min+1) + min //nolint:gosec // Game logic randomness, not security critical
}

// UniformInRange returns a uniform random value in [min, max] using the
// provided randomness source. Used for monetary enchantment rolls.
func UniformInRange(min, max float64, rnd func() float64) float64 {
	if min >= max {
		return min
	}
	return min + rnd()*(max-min)
}
