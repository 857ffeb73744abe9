package flock

// AgentSnapshot is one agent's renderable state: position and velocity for
// placement and orientation, plus the diagnostic color hint. Read-only,
// meant to be taken after Tick completes.
type AgentSnapshot struct {
	ID     int
	X, Y   float64
	VX, VY float64
	R      uint8
	G      uint8
	B      uint8
}

// Snapshot returns the renderable state of the whole population.
func (w *World) Snapshot() []AgentSnapshot {
	snap := make([]AgentSnapshot, 0, len(w.agents))
	for _, a := range w.agents {
		r, g, b := a.ColorHint()
		snap = append(snap, AgentSnapshot{
			ID: a.ID,
			X:  a.Pos.X, Y: a.Pos.Y,
			VX: a.Vel.X, VY: a.Vel.Y,
			R: r, G: g, B: b,
		})
	}
	return snap
}
