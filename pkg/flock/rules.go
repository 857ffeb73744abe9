package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/fuzzy"
	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
)

// Indices into the peer rule set, in evaluation order.
const (
	ruleSeparation = iota
	ruleCohesion
	ruleAlignment
	numPeerRules
)

// minSeparationDistance floors the 1/d repulsion: coincident agents get a
// very large finite push instead of Inf or NaN.
const minSeparationDistance = 0.1

// PeerConditions is the precomputed condition set for one directed
// agent -> neighbor evaluation. Geometry is derived once per pair direction
// and shared by every rule; the thresholds and magnitudes are the observing
// agent's own, passed explicitly so the rules stay stateless.
type PeerConditions struct {
	Delta   geometry.Vector2D // wrapped displacement toward the neighbor
	Dist    float64           // Delta.Len()
	Bearing float64           // Delta.Angle()

	NeighborHeading float64 // the neighbor's current velocity bearing

	Closeness float64
	Influence float64

	SeparationGain     float64
	CohesionMagnitude  float64
	AlignmentMagnitude float64
}

// peerRules is the ordered peer-influence rule set, evaluated through the
// fuzzy engine for every visible neighbor:
//
//	separation  too close, push directly away with 1/d falloff
//	cohesion    mid-band, fixed pull toward the neighbor
//	alignment   match the neighbor's heading, position-independent
var peerRules = []fuzzy.Rule[PeerConditions]{
	{
		Name: "separation",
		Membership: func(c PeerConditions) float64 {
			return fuzzy.Triangle(c.Dist, 0, 0, c.Closeness)
		},
		Result: func(c PeerConditions) geometry.Vector2D {
			d := math.Max(c.Dist, minSeparationDistance)
			return geometry.NewVectorPolar(c.SeparationGain/d, c.Bearing+math.Pi)
		},
	},
	{
		Name: "cohesion",
		Membership: func(c PeerConditions) float64 {
			return fuzzy.Triangle(c.Dist, c.Closeness, 2*c.Closeness, 3*c.Closeness)
		},
		Result: func(c PeerConditions) geometry.Vector2D {
			return geometry.NewVectorPolar(c.CohesionMagnitude, c.Bearing)
		},
	},
	{
		Name: "alignment",
		Membership: func(c PeerConditions) float64 {
			return fuzzy.Triangle(c.Dist, c.Closeness, (c.Closeness+c.Influence)/2, c.Influence)
		},
		Result: func(c PeerConditions) geometry.Vector2D {
			return geometry.NewVectorPolar(c.AlignmentMagnitude, c.NeighborHeading)
		},
	},
}

// PredatorConditions is the condition set for the avoidance evaluation.
type PredatorConditions struct {
	Dist    float64
	Bearing float64 // toward the predator, wrapped

	Influence float64
	Magnitude float64
}

// predatorRules holds the single avoidance rule. Its magnitude constant is
// an order of magnitude above the peer rules so avoidance always overrides
// flocking. Only evaluated while the predator is active.
var predatorRules = []fuzzy.Rule[PredatorConditions]{
	{
		Name: "avoidance",
		Membership: func(c PredatorConditions) float64 {
			return fuzzy.Triangle(c.Dist, 0, 0, 2*c.Influence)
		},
		Result: func(c PredatorConditions) geometry.Vector2D {
			return geometry.NewVectorPolar(c.Magnitude, c.Bearing+math.Pi)
		},
	},
}
