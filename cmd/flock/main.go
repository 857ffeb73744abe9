package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/flock"
	"github.com/lao-tseu-is-alive/go-fuzzy-flock/pkg/ui"
)

// whiteImage is the 1-color source for vertex-tinted triangles.
var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

type Game struct {
	world *flock.World
	cfg   *flock.Config
	dt    float64

	panel           *ui.Panel
	widgetCloseness *ui.Slider
	widgetInfluence *ui.Slider
	widgetVision    *ui.Slider
	widgetMaxSpeed  *ui.Slider
	widgetShowBands *ui.Checkbox

	lastSnapshot []flock.AgentSnapshot
}

func newGame(world *flock.World, cfg *flock.Config) *Game {
	panel := ui.NewPanel(10, 10, 220, "Tuning")
	g := &Game{
		world: world,
		cfg:   cfg,
		dt:    1.0 / float64(cfg.TickRate),
		panel: panel,
	}
	g.widgetCloseness = panel.AddSlider("Closeness", 5, 100, cfg.Closeness)
	g.widgetInfluence = panel.AddSlider("Influence", 20, 300, cfg.Influence)
	g.widgetVision = panel.AddSlider("Field of Vision", 0.2, math.Pi, cfg.FieldOfVision)
	g.widgetMaxSpeed = panel.AddSlider("Max Velocity", 10, 300, cfg.MaxVelocity)
	g.widgetShowBands = panel.AddCheckbox("Show influence bands", false)
	return g
}

func (g *Game) Update() error {
	if g.panel.Update() {
		influence := g.widgetInfluence.Value
		if influence < g.widgetCloseness.Value {
			influence = g.widgetCloseness.Value
		}
		g.world.SetTuning(g.widgetCloseness.Value, influence, g.widgetVision.Value, g.widgetMaxSpeed.Value)
	}

	// The cursor is the predator: it tracks continuously, and holding the
	// left button outside the panel activates it.
	mx, my := ebiten.CursorPosition()
	overPanel := g.panel.Contains(mx, my)
	if !overPanel {
		g.world.SetPredatorPosition(float64(mx), float64(my))
	}
	g.world.SetPredatorActive(!overPanel && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))

	g.world.Tick(g.dt)
	g.lastSnapshot = g.world.Snapshot()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	for i := range g.lastSnapshot {
		drawAgent(screen, &g.lastSnapshot[i])
	}

	// Influence bands around the cursor, to eyeball the rule thresholds
	// while tuning
	if g.widgetShowBands.Value {
		mx, my := ebiten.CursorPosition()
		vector.StrokeCircle(screen, float32(mx), float32(my),
			float32(g.widgetCloseness.Value), 1,
			color.RGBA{R: 255, G: 120, B: 120, A: 180}, true)
		vector.StrokeCircle(screen, float32(mx), float32(my),
			float32(g.widgetInfluence.Value), 1,
			color.RGBA{R: 120, G: 120, B: 255, A: 180}, true)
	}

	if p := g.world.PredatorState(); p.Active {
		vector.StrokeCircle(screen,
			float32(p.Pos.X), float32(p.Pos.Y),
			10, 2, color.RGBA{R: 255, G: 60, B: 60, A: 255}, true)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nAgents: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.world.NumAgents())
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-110, 10)
}

// drawAgent renders one agent as a small triangle pointing along its
// velocity, tinted by the rule-membership color hint.
func drawAgent(screen *ebiten.Image, s *flock.AgentSnapshot) {
	angle := math.Atan2(s.VY, s.VX)

	tipX := s.X + math.Cos(angle)*6
	tipY := s.Y + math.Sin(angle)*6
	rightX := s.X + math.Cos(angle+2.5)*5
	rightY := s.Y + math.Sin(angle+2.5)*5
	leftX := s.X + math.Cos(angle-2.5)*5
	leftY := s.Y + math.Sin(angle-2.5)*5

	cr := float32(s.R) / 255
	cg := float32(s.G) / 255
	cb := float32(s.B) / 255

	vertices := []ebiten.Vertex{
		{DstX: float32(tipX), DstY: float32(tipY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(rightX), DstY: float32(rightY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
		{DstX: float32(leftX), DstY: float32(leftY), SrcX: 1, SrcY: 1, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: 1},
	}
	indices := []uint16{0, 1, 2}
	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}

func main() {
	configFile := flag.String("config", "", "path to a json configuration file")
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

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Fuzzy Flock")
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(newGame(world, cfg)); err != nil {
		logger.Fatalf("game loop: %v", err)
	}
}
