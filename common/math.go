package common

import "cmp"

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps a float32 to [0, 1].
func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

// LinearDistanceFade returns a fade factor that is 1 up to 90% of fadeDistance and
// falls linearly to 0 at fadeDistance. A non-positive fadeDistance disables fading.
//
// Parameters:
//   - distance: distance from the viewer to the light
//   - fadeDistance: distance at which the light is fully faded out
//
// Returns:
//   - float32: fade factor in [0, 1]
func LinearDistanceFade(distance, fadeDistance float32) float32 {
	if fadeDistance <= 0 {
		return 1
	}
	fadeNear := 0.9 * fadeDistance
	return 1 - Saturate((distance-fadeNear)/(fadeDistance-fadeNear))
}

// absF32 returns the absolute value of a float32.
func absF32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
