package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
)

// Agent represents one flocking bird.
//
// The id is assigned at creation in insertion order and stays stable for the
// agent's lifetime; the world uses it as an array index, so it is never
// reused. Position is always normalized into [0, width) x [0, height),
// velocity magnitude is clamped to MaxVelocity after every update, and
// acceleration is recomputed from scratch every tick.
type Agent struct {
	ID int

	Pos geometry.Vector2D
	Vel geometry.Vector2D
	Acc geometry.Vector2D

	// MaxVelocity is jittered around the configured base at creation,
	// giving heterogeneous top speeds. speedFactor keeps the jitter ratio
	// so retuning the base preserves each agent's relative speed.
	MaxVelocity float64
	speedFactor float64

	// Distance bands and vision half-angle driving rule memberships.
	// Uniform across the population by default but owned per agent.
	Closeness     float64
	Influence     float64
	FieldOfVision float64

	// Strongest peer-rule memberships seen this tick, in rule order.
	// Diagnostic only: feeds the color hint, never the physics.
	grades [numPeerRules]float64
}

// Sees reports whether the other agent falls inside this agent's field of
// vision: the angular difference between the current heading and the
// bearing toward the neighbor, taking the shorter way around, must be below
// the vision half-angle. The bearing uses the raw (unwrapped) subtraction.
func (a *Agent) Sees(other *Agent) bool {
	bearing := other.Pos.Sub(a.Pos).Angle()
	return geometry.AngularDistance(a.Vel.Angle(), bearing) < a.FieldOfVision
}

// beginTick resets the per-tick accumulators.
func (a *Agent) beginTick() {
	a.Acc = geometry.Vector2D{}
	a.grades = [numPeerRules]float64{}
}

// noteGrades keeps the strongest membership per rule across all neighbor
// evaluations of the tick.
func (a *Agent) noteGrades(grades []float64) {
	for i := range a.grades {
		if grades[i] > a.grades[i] {
			a.grades[i] = grades[i]
		}
	}
}

// ColorHint maps the first three peer-rule memberships onto an RGB triple:
// each membership m in [0,1] becomes the intensity floor(255*(1-m)), so an
// agent under no influence renders white and saturates toward a channel as
// a rule peaks.
func (a *Agent) ColorHint() (r, g, b uint8) {
	return membershipIntensity(a.grades[ruleSeparation]),
		membershipIntensity(a.grades[ruleCohesion]),
		membershipIntensity(a.grades[ruleAlignment])
}

func membershipIntensity(m float64) uint8 {
	return uint8(math.Floor(255 * (1 - m)))
}

// integrate applies the accumulated acceleration over dt: velocity is
// updated and clamped (scaled down, never up), then the position advances
// and wraps back into the toroidal domain.
func (a *Agent) integrate(dt, width, height float64) {
	a.Vel = a.Vel.Add(a.Acc.Mul(dt))
	if speed := a.Vel.Len(); speed > a.MaxVelocity {
		a.Vel = a.Vel.Mul(a.MaxVelocity / speed)
	}
	a.Pos = geometry.WrapPoint(a.Pos.Add(a.Vel.Mul(dt)), width, height)
}
