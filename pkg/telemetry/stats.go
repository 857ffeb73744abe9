// Package telemetry derives per-tick flock statistics from world snapshots
// and streams them to CSV for offline analysis.
package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/flock"
)

// TickStats is one CSV record of flock-level aggregates.
type TickStats struct {
	Tick           int     `csv:"tick"`
	Agents         int     `csv:"agents"`
	MeanSpeed      float64 `csv:"mean_speed"`
	SpeedStdDev    float64 `csv:"speed_std_dev"`
	Polarization   float64 `csv:"polarization"`
	PredatorActive bool    `csv:"predator_active"`
}

// Collect computes the aggregates for one snapshot. Polarization is the
// magnitude of the mean heading unit vector: 1.0 for a perfectly aligned
// flock, near 0 for headings spread uniformly. Stationary agents carry no
// heading and are excluded from it.
func Collect(tick int, snap []flock.AgentSnapshot, predatorActive bool) TickStats {
	stats := TickStats{
		Tick:           tick,
		Agents:         len(snap),
		PredatorActive: predatorActive,
	}
	if len(snap) == 0 {
		return stats
	}

	speeds := make([]float64, len(snap))
	var hx, hy float64
	moving := 0
	for i, a := range snap {
		speed := math.Hypot(a.VX, a.VY)
		speeds[i] = speed
		if speed > 0 {
			hx += a.VX / speed
			hy += a.VY / speed
			moving++
		}
	}

	stats.MeanSpeed = stat.Mean(speeds, nil)
	if len(speeds) > 1 {
		stats.SpeedStdDev = stat.StdDev(speeds, nil)
	}
	if moving > 0 {
		stats.Polarization = math.Hypot(hx, hy) / float64(moving)
	}
	return stats
}
