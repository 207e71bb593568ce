package nav

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// clamp01 clamps a value to the [0, 1] range. NaN maps to 0.
func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v >= 0 {
		return v
	}
	return 0
}

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// distanceSq2D returns the squared planar distance between two points.
func distanceSq2D(a, b r3.Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// unitOrZero normalizes v, returning the zero vector and 0 when v has no length.
func unitOrZero(v r3.Vec) (r3.Vec, float64) {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) {
		return r3.Vec{}, 0
	}
	return r3.Scale(1/n, v), n
}
