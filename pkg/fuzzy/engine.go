package fuzzy

import "github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"

// Rule pairs a membership function with a result vector over a shared
// condition set C. The condition set carries values precomputed once per
// evaluation (distance, bearing, wrapped delta, thresholds) so individual
// rules never redo geometry.
//
// Rules are stateless pure functions: all per-agent configuration travels
// inside C, never inside the rule value.
type Rule[C any] struct {
	Name       string
	Membership func(C) float64
	Result     func(C) geometry.Vector2D
}

// Evaluate runs the rules in their given fixed order against one condition
// set and sums the membership-scaled result vectors into one acceleration
// delta.
//
// A rule with zero membership contributes nothing at all: its result
// function is never invoked, so an inactive rule never shows up in
// diagnostics or costs geometry work.
//
// If grades is non-nil it must have at least len(rules) entries; the raw
// membership of each rule is stored there for diagnostic consumers (e.g.
// the agent color hint).
func Evaluate[C any](cond C, rules []Rule[C], grades []float64) geometry.Vector2D {
	var sum geometry.Vector2D
	for i, r := range rules {
		m := r.Membership(cond)
		if grades != nil {
			grades[i] = m
		}
		if m <= 0 {
			continue
		}
		sum = sum.Add(r.Result(cond).Mul(m))
	}
	return sum
}
