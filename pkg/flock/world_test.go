package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
)

func newTestWorld(t *testing.T, mutate func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.NumAgents = 0
	if mutate != nil {
		mutate(cfg)
	}
	w, err := NewWorld(cfg, nil)
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	return w
}

func TestNewWorld_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Zero width", func(c *Config) { c.WorldWidth = 0 }},
		{"Negative height", func(c *Config) { c.WorldHeight = -100 }},
		{"Negative closeness", func(c *Config) { c.Closeness = -1 }},
		{"Influence below closeness", func(c *Config) { c.Influence = c.Closeness / 2 }},
		{"Zero max velocity", func(c *Config) { c.MaxVelocity = 0 }},
		{"Vision above Pi", func(c *Config) { c.FieldOfVision = 4 }},
		{"Negative magnitude", func(c *Config) { c.SeparationGain = -5 }},
		{"Zero tick rate", func(c *Config) { c.TickRate = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if _, err := NewWorld(cfg, nil); err == nil {
				t.Error("expected construction to fail, got nil error")
			}
		})
	}
}

func TestWorld_SpawnAssignsInsertionOrderIDs(t *testing.T) {
	w := newTestWorld(t, nil)
	for i := 0; i < 5; i++ {
		if id := w.SpawnAgent(); id != i {
			t.Fatalf("spawn %d returned id %d", i, id)
		}
	}
	if w.NumAgents() != 5 {
		t.Errorf("NumAgents = %d; want 5", w.NumAgents())
	}
}

func TestWorld_AgentByID(t *testing.T) {
	w := newTestWorld(t, nil)
	id := w.SpawnAgent()

	if _, err := w.AgentByID(id); err != nil {
		t.Errorf("AgentByID(%d) failed: %v", id, err)
	}
	if _, err := w.AgentByID(99); err == nil {
		t.Error("AgentByID(99) should fail for an id outside the population")
	}
	if _, err := w.AgentByID(-1); err == nil {
		t.Error("AgentByID(-1) should fail")
	}
}

func TestWorld_SpawnJittersMaxVelocity(t *testing.T) {
	w := newTestWorld(t, nil)
	for i := 0; i < 100; i++ {
		w.SpawnAgent()
	}
	lo := w.cfg.MaxVelocity * (1 - w.cfg.MaxVelocityJitter)
	hi := w.cfg.MaxVelocity * (1 + w.cfg.MaxVelocityJitter)
	for _, a := range w.agents {
		if a.MaxVelocity < lo-1e-9 || a.MaxVelocity > hi+1e-9 {
			t.Fatalf("agent %d MaxVelocity %.3f outside [%.3f, %.3f]", a.ID, a.MaxVelocity, lo, hi)
		}
	}
}

// After a tick every agent's speed stays at or below its own max, even in a
// crowded world with the predator active.
func TestTick_VelocityClamp(t *testing.T) {
	w := newTestWorld(t, func(c *Config) {
		c.WorldWidth, c.WorldHeight = 200, 200
	})
	for i := 0; i < 50; i++ {
		w.SpawnAgent()
	}
	w.SetPredatorPosition(100, 100)
	w.SetPredatorActive(true)

	for tick := 0; tick < 20; tick++ {
		w.Tick(1.0 / 24)
		for _, a := range w.agents {
			if speed := a.Vel.Len(); speed > a.MaxVelocity+1e-9 {
				t.Fatalf("tick %d: agent %d speed %.3f exceeds max %.3f", tick, a.ID, speed, a.MaxVelocity)
			}
		}
	}
}

// Positions stay normalized into the toroidal domain across ticks.
func TestTick_PositionsStayWrapped(t *testing.T) {
	w := newTestWorld(t, nil)
	for i := 0; i < 30; i++ {
		w.SpawnAgent()
	}
	for tick := 0; tick < 50; tick++ {
		w.Tick(1.0 / 24)
	}
	for _, a := range w.agents {
		if a.Pos.X < 0 || a.Pos.X >= w.cfg.WorldWidth || a.Pos.Y < 0 || a.Pos.Y >= w.cfg.WorldHeight {
			t.Fatalf("agent %d position %v escaped the domain", a.ID, a.Pos)
		}
	}
}

// With active == false, moving the predator arbitrarily close produces zero
// contribution.
func TestTick_PredatorDormancy(t *testing.T) {
	w := newTestWorld(t, nil)
	id := w.SpawnAgentAt(geometry.Vector2D{X: 400, Y: 300}, geometry.Vector2D{X: 50, Y: 0})
	a, _ := w.AgentByID(id)

	w.SetPredatorPosition(400, 300) // right on top of the agent
	w.SetPredatorActive(false)

	w.Tick(1.0 / 24)

	if !a.Acc.Eq(geometry.Vector2D{}) {
		t.Errorf("inactive predator produced acceleration %v; want zero", a.Acc)
	}
}

// Predator activated at the agent's exact position: avoidance membership is
// at its maximum and the result stays finite.
func TestTick_PredatorAtZeroDistance(t *testing.T) {
	w := newTestWorld(t, nil)
	id := w.SpawnAgentAt(geometry.Vector2D{X: 400, Y: 300}, geometry.Vector2D{X: 50, Y: 0})
	a, _ := w.AgentByID(id)

	w.SetPredatorPosition(400, 300)
	w.SetPredatorActive(true)

	w.Tick(1.0 / 24)

	mag := a.Acc.Len()
	if math.IsNaN(mag) || math.IsInf(mag, 0) {
		t.Fatalf("zero-distance predator produced non-finite acceleration %v", a.Acc)
	}
	// Membership 1.0 at zero distance, so the full magnitude applies
	if math.Abs(mag-w.cfg.PredatorMagnitude) > 1e-9 {
		t.Errorf("acceleration magnitude = %.3f; want %.3f (membership at maximum)", mag, w.cfg.PredatorMagnitude)
	}
}

// Predator input staged from outside is applied atomically at the top of
// the next tick: position and active flag change together.
func TestPredatorInput_AppliedAtTickStart(t *testing.T) {
	w := newTestWorld(t, nil)

	w.SetPredatorPosition(123, 45)
	w.SetPredatorActive(true)
	if got := w.PredatorState(); got.Active {
		t.Error("staged input visible before the next tick")
	}

	w.Tick(1.0 / 24)
	got := w.PredatorState()
	if !got.Active {
		t.Error("predator should be active after the tick applied the staged input")
	}
	if !got.Pos.Eq(geometry.Vector2D{X: 123, Y: 45}) {
		t.Errorf("predator position = %v; want (123, 45)", got.Pos)
	}
}

func TestSetTuning(t *testing.T) {
	w := newTestWorld(t, nil)
	for i := 0; i < 10; i++ {
		w.SpawnAgent()
	}

	w.SetTuning(30, 120, 1.5, 80)

	for _, a := range w.agents {
		if a.Closeness != 30 || a.Influence != 120 || a.FieldOfVision != 1.5 {
			t.Fatalf("agent %d thresholds not retuned: %+v", a.ID, a)
		}
		want := 80 * a.speedFactor
		if math.Abs(a.MaxVelocity-want) > 1e-9 {
			t.Fatalf("agent %d MaxVelocity = %.3f; want %.3f (jitter preserved)", a.ID, a.MaxVelocity, want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SpawnAgentAt(geometry.Vector2D{X: 10, Y: 20}, geometry.Vector2D{X: 3, Y: 4})

	snap := w.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("snapshot length = %d; want 1", len(snap))
	}
	s := snap[0]
	if s.ID != 0 || s.X != 10 || s.Y != 20 || s.VX != 3 || s.VY != 4 {
		t.Errorf("snapshot = %+v", s)
	}
	// No rule fired yet: memberships are zero, color hint is white
	if s.R != 255 || s.G != 255 || s.B != 255 {
		t.Errorf("color hint = (%d, %d, %d); want (255, 255, 255)", s.R, s.G, s.B)
	}
}
