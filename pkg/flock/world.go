// Package flock implements the fuzzy-logic steering core: a fixed
// population of agents on a toroidally wrapped plane, steered by fuzzy
// peer-influence and predator-avoidance rules, with sorted-sweep neighbor
// discovery. The package is the whole simulation core; rendering, input
// capture and frame scheduling live in the cmd shims.
package flock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/fuzzy"
	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

// Predator is the user-controlled point agents flee from. While inactive it
// exerts zero influence no matter how close it is.
type Predator struct {
	Pos    geometry.Vector2D
	Active bool
}

// World owns the agent population, the toroidal domain and the predator.
// It is single-threaded: one Tick runs to completion before the next is
// scheduled, and nothing inside a tick suspends. Predator input may arrive
// from another goroutine at any time; it is staged and applied atomically
// at the top of the next tick so no agent ever observes a half-updated
// predator.
type World struct {
	cfg    *Config
	agents []*Agent

	predator Predator

	mu      sync.Mutex
	pending Predator

	// Scratch state reused tick to tick by neighbor discovery
	visited map[pairKey]struct{}
	sortBuf []*Agent

	logger log.Logger

	// Benchmark counters, logged once per second like the rest of the
	// simulation family
	ticks          int
	pairsEvaluated int
	lastLogTime    time.Time
}

// NewWorld creates a world for the given configuration. Invalid
// configuration is rejected here so per-tick behavior stays total.
// A nil logger discards all output.
func NewWorld(cfg *Config, logger log.Logger) (*World, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid world configuration: %w", err)
	}
	if logger == nil {
		logger = log.DiscardLogger
	}

	return &World{
		cfg:         cfg,
		visited:     make(map[pairKey]struct{}),
		logger:      logger,
		lastLogTime: time.Now(),
	}, nil
}

// Config returns the live configuration.
func (w *World) Config() *Config { return w.cfg }

// Seed spawns the configured initial population.
func (w *World) Seed() {
	for i := 0; i < w.cfg.NumAgents; i++ {
		w.SpawnAgent()
	}
	w.logger.Infof("world %gx%g seeded with %d agents (cutoff %.1f)",
		w.cfg.WorldWidth, w.cfg.WorldHeight, len(w.agents), w.cfg.Cutoff())
}

// SpawnAgent adds one agent with a random position inside the world bounds,
// a random heading, and a max velocity jittered around the configured base.
// Returns the new agent's id.
func (w *World) SpawnAgent() int {
	pos := geometry.Vector2D{
		X: rand.Float64() * w.cfg.WorldWidth,
		Y: rand.Float64() * w.cfg.WorldHeight,
	}
	vel := geometry.NewVectorPolar(
		w.cfg.MaxVelocity*(0.5+0.5*rand.Float64()),
		(rand.Float64()*2-1)*math.Pi,
	)
	return w.SpawnAgentAt(pos, vel)
}

// SpawnAgentAt adds one agent with explicit position and velocity. Used by
// scenario seeding and tests; SpawnAgent is the randomized form.
func (w *World) SpawnAgentAt(pos, vel geometry.Vector2D) int {
	factor := 1 + (rand.Float64()*2-1)*w.cfg.MaxVelocityJitter
	a := &Agent{
		ID:            len(w.agents),
		Pos:           geometry.WrapPoint(pos, w.cfg.WorldWidth, w.cfg.WorldHeight),
		Vel:           vel,
		MaxVelocity:   w.cfg.MaxVelocity * factor,
		speedFactor:   factor,
		Closeness:     w.cfg.Closeness,
		Influence:     w.cfg.Influence,
		FieldOfVision: w.cfg.FieldOfVision,
	}
	w.agents = append(w.agents, a)
	return a.ID
}

// NumAgents returns the live population size.
func (w *World) NumAgents() int { return len(w.agents) }

// AgentByID returns the agent with the given id. An id outside the live
// population is a programming error on the caller's side, reported as an
// error rather than undefined behavior.
func (w *World) AgentByID(id int) (*Agent, error) {
	if id < 0 || id >= len(w.agents) {
		return nil, fmt.Errorf("agent id %d outside live population of %d", id, len(w.agents))
	}
	return w.agents[id], nil
}

// SetPredatorPosition stages a predator move. The position tracks the
// pointer continuously regardless of the active state.
func (w *World) SetPredatorPosition(x, y float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending.Pos = geometry.WrapPoint(geometry.Vector2D{X: x, Y: y}, w.cfg.WorldWidth, w.cfg.WorldHeight)
}

// SetPredatorActive stages the predator press state.
func (w *World) SetPredatorActive(active bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending.Active = active
}

// PredatorState returns the predator as of the last tick.
func (w *World) PredatorState() Predator { return w.predator }

// SetTuning applies new rule thresholds to the whole population, preserving
// each agent's speed jitter. Drives the live tuning panel.
func (w *World) SetTuning(closeness, influence, fieldOfVision, maxVelocity float64) {
	w.cfg.Closeness = closeness
	w.cfg.Influence = influence
	w.cfg.FieldOfVision = fieldOfVision
	w.cfg.MaxVelocity = maxVelocity
	for _, a := range w.agents {
		a.Closeness = closeness
		a.Influence = influence
		a.FieldOfVision = fieldOfVision
		a.MaxVelocity = maxVelocity * a.speedFactor
	}
}

// Tick advances the simulation by dt seconds: staged predator input is
// applied, neighbor discovery selects the candidate pairs, each pair feeds
// the steering rules of both agents, the predator rule runs once per agent,
// and finally every agent integrates. Accumulation completes for the whole
// population before any integration runs, so all accelerations are computed
// from the same snapshot of positions and velocities.
func (w *World) Tick(dt float64) {
	w.mu.Lock()
	w.predator = w.pending
	w.mu.Unlock()

	for _, a := range w.agents {
		a.beginTick()
	}

	pairs := 0
	w.forEachNeighborPair(w.cfg.Cutoff(), func(a, b *Agent, delta geometry.Vector2D, dist float64) {
		pairs++
		w.steerPair(a, b, delta, dist)
	})

	if w.predator.Active {
		for _, a := range w.agents {
			w.steerFromPredator(a)
		}
	}

	for _, a := range w.agents {
		a.integrate(dt, w.cfg.WorldWidth, w.cfg.WorldHeight)
	}

	w.ticks++
	w.pairsEvaluated += pairs
	w.logBenchmarks()
}

// steerPair runs the peer rule set in both directions. The pair is
// evaluated once per direction: each agent observes the other with its own
// thresholds, so the two contributions are not assumed identical.
func (w *World) steerPair(a, b *Agent, delta geometry.Vector2D, dist float64) {
	if a.Sees(b) {
		w.steerPeer(a, b, delta, dist)
	}
	if b.Sees(a) {
		w.steerPeer(b, a, delta.Mul(-1), dist)
	}
}

func (w *World) steerPeer(agent, neighbor *Agent, delta geometry.Vector2D, dist float64) {
	cond := PeerConditions{
		Delta:              delta,
		Dist:               dist,
		Bearing:            delta.Angle(),
		NeighborHeading:    neighbor.Vel.Angle(),
		Closeness:          agent.Closeness,
		Influence:          agent.Influence,
		SeparationGain:     w.cfg.SeparationGain,
		CohesionMagnitude:  w.cfg.CohesionMagnitude,
		AlignmentMagnitude: w.cfg.AlignmentMagnitude,
	}

	var grades [numPeerRules]float64
	agent.Acc = agent.Acc.Add(fuzzy.Evaluate(cond, peerRules, grades[:]))
	agent.noteGrades(grades[:])
}

func (w *World) steerFromPredator(a *Agent) {
	delta := geometry.ShortestDelta(a.Pos, w.predator.Pos, w.cfg.WorldWidth, w.cfg.WorldHeight)
	cond := PredatorConditions{
		Dist:      delta.Len(),
		Bearing:   delta.Angle(),
		Influence: a.Influence,
		Magnitude: w.cfg.PredatorMagnitude,
	}
	a.Acc = a.Acc.Add(fuzzy.Evaluate(cond, predatorRules, nil))
}

func (w *World) logBenchmarks() {
	if time.Since(w.lastLogTime) < time.Second {
		return
	}
	avgPairs := 0
	if w.ticks > 0 {
		avgPairs = w.pairsEvaluated / w.ticks
	}
	w.logger.Infof("ticks/s: %d | avg pairs/tick: %d | agents: %d | predator active: %t",
		w.ticks, avgPairs, len(w.agents), w.predator.Active)
	w.ticks = 0
	w.pairsEvaluated = 0
	w.lastLogTime = time.Now()
}
