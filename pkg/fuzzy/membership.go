// Package fuzzy implements the fuzzy-logic steering primitives: standard
// membership shapes mapping a scalar condition to a degree of applicability
// in [0,1], and a generic rule evaluator combining membership-weighted
// result vectors.
package fuzzy

// Triangle rises linearly from 0 at a to 1 at b, then falls back to 0 at c.
// Outside [a, c] the membership is 0.
//
// Degenerate spans (a == b or b == c) collapse the ramp into a vertical
// edge instead of dividing by zero: the transition becomes a step, so no
// NaN can leak into the physics.
func Triangle(x, a, b, c float64) float64 {
	rise := ratio(x-a, b-a)
	fall := ratio(c-x, c-b)
	return clamp01(min(rise, fall))
}

// Trapezoid rises from 0 at a to 1 at b, stays at 1 until c, then falls to
// 0 at d. Degenerate spans are treated as steps, like Triangle.
func Trapezoid(x, a, b, c, d float64) float64 {
	rise := ratio(x-a, b-a)
	fall := ratio(d-x, d-c)
	return clamp01(min(rise, min(1, fall)))
}

// Square is 1 strictly inside (a, b) and 0 elsewhere.
func Square(x, a, b float64) float64 {
	if a < x && x < b {
		return 1
	}
	return 0
}

// ratio guards the membership slopes against zero-width spans: a collapsed
// span acts as a step, full membership on the inclusive side.
func ratio(num, den float64) float64 {
	if den == 0 {
		if num >= 0 {
			return 1
		}
		return 0
	}
	return num / den
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
