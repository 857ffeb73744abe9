package flock

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
)

// bruteForcePairs selects neighbor pairs the obvious O(N^2) way, as the
// ground truth for the sorted sweep.
func bruteForcePairs(w *World, cutoff float64) map[pairKey]struct{} {
	pairs := make(map[pairKey]struct{})
	for i, a := range w.agents {
		for _, b := range w.agents[i+1:] {
			d := geometry.WrapDistance(a.Pos, b.Pos, w.cfg.WorldWidth, w.cfg.WorldHeight)
			if d <= cutoff {
				pairs[makePairKey(a.ID, b.ID)] = struct{}{}
			}
		}
	}
	return pairs
}

// The sweep must select exactly the brute-force pair set, deliver each pair
// once, and report the wrapped displacement.
func TestNeighborSweep_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 13))

	for _, n := range []int{2, 10, 50, 200} {
		t.Run(fmt.Sprintf("%d agents", n), func(t *testing.T) {
			w := newTestWorld(t, nil)
			for i := 0; i < n; i++ {
				w.SpawnAgentAt(geometry.Vector2D{
					X: rng.Float64() * w.cfg.WorldWidth,
					Y: rng.Float64() * w.cfg.WorldHeight,
				}, geometry.Vector2D{})
			}
			cutoff := w.cfg.Cutoff()

			got := make(map[pairKey]struct{})
			w.forEachNeighborPair(cutoff, func(a, b *Agent, delta geometry.Vector2D, dist float64) {
				key := makePairKey(a.ID, b.ID)
				if _, dup := got[key]; dup {
					t.Errorf("pair (%d, %d) delivered twice", key.lo, key.hi)
				}
				got[key] = struct{}{}

				wrapped := geometry.WrapDistance(a.Pos, b.Pos, w.cfg.WorldWidth, w.cfg.WorldHeight)
				if math.Abs(dist-wrapped) > 1e-9 || math.Abs(delta.Len()-wrapped) > 1e-9 {
					t.Errorf("pair (%d, %d): dist %g does not match wrapped distance %g", key.lo, key.hi, dist, wrapped)
				}
			})

			want := bruteForcePairs(w, cutoff)
			for key := range want {
				if _, ok := got[key]; !ok {
					t.Errorf("sweep missed pair (%d, %d)", key.lo, key.hi)
				}
			}
			for key := range got {
				if _, ok := want[key]; !ok {
					t.Errorf("sweep selected spurious pair (%d, %d)", key.lo, key.hi)
				}
			}
		})
	}
}

// A cutoff above half the period leaves no dead zone on that axis; the sweep
// degrades to a full scan and still matches brute force.
func TestNeighborSweep_CutoffAboveHalfPeriod(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	w := newTestWorld(t, func(c *Config) {
		c.WorldWidth, c.WorldHeight = 150, 100
		c.NeighborRadius = 100
	})
	for i := 0; i < 20; i++ {
		w.SpawnAgentAt(geometry.Vector2D{
			X: rng.Float64() * w.cfg.WorldWidth,
			Y: rng.Float64() * w.cfg.WorldHeight,
		}, geometry.Vector2D{})
	}

	got := make(map[pairKey]struct{})
	w.forEachNeighborPair(w.cfg.Cutoff(), func(a, b *Agent, delta geometry.Vector2D, dist float64) {
		got[makePairKey(a.ID, b.ID)] = struct{}{}
	})

	want := bruteForcePairs(w, w.cfg.Cutoff())
	if len(got) != len(want) {
		t.Fatalf("sweep selected %d pairs; brute force selects %d", len(got), len(want))
	}
	for k := range want {
		if _, ok := got[k]; !ok {
			t.Errorf("sweep missed pair (%d, %d)", k.lo, k.hi)
		}
	}
}

// Two agents hugging opposite edges are a near pair through the seam.
func TestNeighborSweep_FindsSeamPair(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SpawnAgentAt(geometry.Vector2D{X: 1, Y: 300}, geometry.Vector2D{})
	w.SpawnAgentAt(geometry.Vector2D{X: 799, Y: 300}, geometry.Vector2D{})

	found := 0
	w.forEachNeighborPair(w.cfg.Cutoff(), func(a, b *Agent, delta geometry.Vector2D, dist float64) {
		found++
		if math.Abs(dist-2) > 1e-9 {
			t.Errorf("seam pair distance = %g; want 2", dist)
		}
	})
	if found != 1 {
		t.Fatalf("seam pair delivered %d times; want 1", found)
	}
}

func TestNeighborSweep_SingleAgent(t *testing.T) {
	w := newTestWorld(t, nil)
	w.SpawnAgent()
	w.forEachNeighborPair(w.cfg.Cutoff(), func(a, b *Agent, delta geometry.Vector2D, dist float64) {
		t.Error("no pairs exist with a single agent")
	})
}

func BenchmarkNeighborSweep(b *testing.B) {
	for _, n := range []int{100, 250, 500} {
		b.Run(fmt.Sprintf("%d agents", n), func(b *testing.B) {
			cfg := DefaultConfig()
			cfg.NumAgents = n
			w, err := NewWorld(cfg, nil)
			if err != nil {
				b.Fatal(err)
			}
			w.Seed()
			cutoff := cfg.Cutoff()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				w.forEachNeighborPair(cutoff, func(a, bb *Agent, delta geometry.Vector2D, dist float64) {})
			}
		})
	}
}

func BenchmarkTick(b *testing.B) {
	cfg := DefaultConfig()
	w, err := NewWorld(cfg, nil)
	if err != nil {
		b.Fatal(err)
	}
	w.Seed()
	dt := 1.0 / float64(cfg.TickRate)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Tick(dt)
	}
}
