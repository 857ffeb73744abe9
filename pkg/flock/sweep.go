package flock

import (
	"sort"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/geometry"
)

// Neighbor discovery: instead of the full O(N^2) pairwise sweep, agents are
// sorted along one axis and each agent only scans forward (wrapping around
// the sequence end, since the domain is toroidal) until no further candidate
// can be within the cutoff on that axis. The pass is then repeated on the
// other axis, reusing the visited-pair set so nothing is evaluated twice.
// The selected pair set is exactly what brute force would select.

// pairKey identifies an unordered agent pair.
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// forEachNeighborPair invokes fn once for every unordered agent pair whose
// toroidal distance is at most cutoff. delta is the wrapped displacement
// from a to b.
func (w *World) forEachNeighborPair(cutoff float64, fn func(a, b *Agent, delta geometry.Vector2D, dist float64)) {
	n := len(w.agents)
	if n < 2 {
		return
	}

	// Reuse the visited set and the sort buffer across ticks to keep the
	// hot path allocation-free.
	clear(w.visited)
	if cap(w.sortBuf) < n {
		w.sortBuf = make([]*Agent, n)
	}
	buf := append(w.sortBuf[:0], w.agents...)

	w.sweepAxis(buf, cutoff, w.cfg.WorldWidth, func(a *Agent) float64 { return a.Pos.X }, fn)
	w.sweepAxis(buf, cutoff, w.cfg.WorldHeight, func(a *Agent) float64 { return a.Pos.Y }, fn)
}

// sweepAxis runs one sorted sweep along a single axis. period is that
// axis's own world dimension: the early exit must use the matching period
// or wrap-close pairs near the seam get lost.
func (w *World) sweepAxis(buf []*Agent, cutoff, period float64, coord func(*Agent) float64, fn func(a, b *Agent, delta geometry.Vector2D, dist float64)) {
	sort.Slice(buf, func(i, j int) bool { return coord(buf[i]) < coord(buf[j]) })

	n := len(buf)
	for i := 0; i < n; i++ {
		ci := coord(buf[i])
		for k := 1; k < n; k++ {
			j := (i + k) % n
			sep := coord(buf[j]) - ci
			if sep < 0 {
				sep += period
			}

			// sep is the forward ring distance, monotonically increasing
			// along the scan. Stop once it is explained neither directly
			// (sep <= cutoff) nor by wraparound (sep >= period-cutoff):
			// every wrap-close pair beyond this point is reached by the
			// partner's own forward scan.
			if sep > cutoff && sep < period-cutoff {
				break
			}

			key := makePairKey(buf[i].ID, buf[j].ID)
			if _, seen := w.visited[key]; seen {
				continue
			}
			w.visited[key] = struct{}{}

			delta := geometry.ShortestDelta(buf[i].Pos, buf[j].Pos, w.cfg.WorldWidth, w.cfg.WorldHeight)
			if dist := delta.Len(); dist <= cutoff {
				fn(buf[i], buf[j], delta, dist)
			}
		}
	}
}
