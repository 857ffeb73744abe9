// flockbench runs the simulation headless at full speed and streams
// per-tick flock statistics to CSV. A scripted predator pass through the
// middle of the world exercises the avoidance rule so runs are comparable.
package main

import (
	"flag"
	"os"
	"time"

	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/telemetry"
)

func main() {
	configFile := flag.String("config", "", "path to a json configuration file")
	ticks := flag.Int("ticks", 2400, "number of ticks to run")
	out := flag.String("out", "stats.csv", "telemetry output file, empty to disable")
	predator := flag.Bool("predator", true, "run the scripted predator pass")
	flag.Parse()

	logger := golog.New(golog.InfoLevel, os.Stdout)

	cfg := flock.DefaultConfig()
	if *configFile != "" {
		loaded, err := flock.LoadConfig(*configFile)
		if err != nil {
			logger.Fatalf("loading configuration: %v", err)
		}
		cfg = loaded
	}

	world, err := flock.NewWorld(cfg, logger)
	if err != nil {
		logger.Fatalf("creating world: %v", err)
	}
	world.Seed()

	writer, err := telemetry.NewWriter(*out)
	if err != nil {
		logger.Fatalf("opening telemetry output: %v", err)
	}
	defer writer.Close()

	dt := 1.0 / float64(cfg.TickRate)
	start := time.Now()

	for tick := 0; tick < *ticks; tick++ {
		if *predator {
			scriptPredator(world, cfg, tick, *ticks)
		}

		world.Tick(dt)

		stats := telemetry.Collect(tick, world.Snapshot(), world.PredatorState().Active)
		if err := writer.Write(stats); err != nil {
			logger.Fatalf("writing telemetry: %v", err)
		}
	}

	elapsed := time.Since(start)
	logger.Infof("ran %d ticks with %d agents in %s (%.0f ticks/s)",
		*ticks, world.NumAgents(), elapsed.Round(time.Millisecond),
		float64(*ticks)/elapsed.Seconds())
}

// scriptPredator sweeps the predator once across the horizontal midline
// during the middle third of the run.
func scriptPredator(w *flock.World, cfg *flock.Config, tick, total int) {
	passStart := total / 3
	passEnd := 2 * total / 3
	if tick < passStart || tick >= passEnd {
		w.SetPredatorActive(false)
		return
	}

	progress := float64(tick-passStart) / float64(passEnd-passStart)
	w.SetPredatorPosition(progress*cfg.WorldWidth, cfg.WorldHeight/2)
	w.SetPredatorActive(true)
}
