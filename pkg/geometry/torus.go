package geometry

import "math"

// This file contains the math for a toroidally wrapped rectangular domain:
// each axis wraps like a cycle, so opposite edges are adjacent and the
// shortest path between two points may cross a boundary.

// WrapCoord normalizes a coordinate into [0, period).
// Unlike math.Mod alone it also handles negative inputs.
func WrapCoord(v, period float64) float64 {
	m := math.Mod(v, period)
	if m < 0 {
		m += period
	}
	return m
}

// WrapPoint normalizes a position into [0, width) x [0, height).
func WrapPoint(p Vector2D, width, height float64) Vector2D {
	return Vector2D{
		X: WrapCoord(p.X, width),
		Y: WrapCoord(p.Y, height),
	}
}

// WrapSep returns the wrapped 1D separation between two coordinates on a
// cycle of the given period: min(|sep|, period - |sep|). The result never
// exceeds period/2.
func WrapSep(a, b, period float64) float64 {
	sep := math.Abs(a - b)
	sep = math.Mod(sep, period)
	return math.Min(sep, period-sep)
}

// ShortestDelta computes the displacement from origin to destination on the
// torus: for each axis independently the destination shifted by 0 or
// ±period is compared and the candidate minimizing the absolute difference
// wins. The result is a displacement (not a position) to use in place of a
// naive subtraction whenever two points may be separated by a wrap. Each
// component magnitude is at most half the corresponding period.
func ShortestDelta(origin, destination Vector2D, width, height float64) Vector2D {
	return Vector2D{
		X: shortestAxisDelta(origin.X, destination.X, width),
		Y: shortestAxisDelta(origin.Y, destination.Y, height),
	}
}

func shortestAxisDelta(origin, destination, period float64) float64 {
	d := destination - origin
	if math.Abs(d+period) < math.Abs(d) {
		d += period
	} else if math.Abs(d-period) < math.Abs(d) {
		d -= period
	}
	return d
}

// WrapDistance returns the toroidal distance between two points.
func WrapDistance(a, b Vector2D, width, height float64) float64 {
	return ShortestDelta(a, b, width, height).Len()
}

// AngularDistance returns the shortest angular distance between two bearings,
// in [0, Pi]. Handles wraparound past Pi.
func AngularDistance(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d < -math.Pi {
		d += 2 * math.Pi
	} else if d > math.Pi {
		d -= 2 * math.Pi
	}
	return math.Abs(d)
}
