package flock

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema string

// Config holds every tunable of the simulation core.
type Config struct {
	// World dimensions of the toroidal domain
	WorldWidth  float64 `json:"worldWidth"`
	WorldHeight float64 `json:"worldHeight"`

	// Population seeded at startup (fixed thereafter)
	NumAgents int `json:"numAgents"`

	// Tick rate the external scheduler is expected to drive (Hz)
	TickRate int `json:"tickRate"`

	// Physics
	MaxVelocity       float64 `json:"maxVelocity"`       // base top speed, units/s
	MaxVelocityJitter float64 `json:"maxVelocityJitter"` // per-agent fraction, gives heterogeneous top speeds

	// Distance bands driving rule memberships
	Closeness float64 `json:"closeness"`
	Influence float64 `json:"influence"`

	// Half-angle (radians) limiting which neighbors can influence an agent
	FieldOfVision float64 `json:"fieldOfVision"`

	// Rule magnitudes. Qualitative ordering to preserve:
	// cohesion < alignment < separation at small distance.
	SeparationGain     float64 `json:"separationGain"`     // K1 of the 1/d repulsion
	CohesionMagnitude  float64 `json:"cohesionMagnitude"`  // fixed pull toward a neighbor
	AlignmentMagnitude float64 `json:"alignmentMagnitude"` // fixed push along a neighbor's heading
	PredatorMagnitude  float64 `json:"predatorMagnitude"`  // dominates peer rules by design

	// Neighbor discovery cutoff. 0 derives max(3*closeness, influence) so
	// every band a peer rule can fire in is covered.
	NeighborRadius float64 `json:"neighborRadius"`
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() *Config {
	return &Config{
		WorldWidth:         800,
		WorldHeight:        600,
		NumAgents:          250,
		TickRate:           24,
		MaxVelocity:        100,
		MaxVelocityJitter:  0.2,
		Closeness:          25,
		Influence:          100,
		FieldOfVision:      2.0,
		SeparationGain:     2000,
		CohesionMagnitude:  6,
		AlignmentMagnitude: 10,
		PredatorMagnitude:  500,
		NeighborRadius:     0,
	}
}

// Cutoff returns the neighbor discovery distance threshold.
func (c *Config) Cutoff() float64 {
	if c.NeighborRadius > 0 {
		return c.NeighborRadius
	}
	return math.Max(3*c.Closeness, c.Influence)
}

// Validate rejects configurations that would produce undefined per-tick
// behavior. Called at world creation so the tick path never has to check.
func (c *Config) Validate() error {
	if c.WorldWidth <= 0 || c.WorldHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive, got %gx%g", c.WorldWidth, c.WorldHeight)
	}
	if c.NumAgents < 0 {
		return fmt.Errorf("numAgents must not be negative, got %d", c.NumAgents)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %d", c.TickRate)
	}
	if c.MaxVelocity <= 0 {
		return fmt.Errorf("maxVelocity must be positive, got %g", c.MaxVelocity)
	}
	if c.MaxVelocityJitter < 0 || c.MaxVelocityJitter >= 1 {
		return fmt.Errorf("maxVelocityJitter must be in [0, 1), got %g", c.MaxVelocityJitter)
	}
	if c.Closeness <= 0 {
		return fmt.Errorf("closeness must be positive, got %g", c.Closeness)
	}
	if c.Influence < c.Closeness {
		return fmt.Errorf("influence (%g) must not be below closeness (%g)", c.Influence, c.Closeness)
	}
	if c.FieldOfVision <= 0 || c.FieldOfVision > math.Pi {
		return fmt.Errorf("fieldOfVision must be in (0, Pi], got %g", c.FieldOfVision)
	}
	if c.SeparationGain < 0 || c.CohesionMagnitude < 0 || c.AlignmentMagnitude < 0 || c.PredatorMagnitude < 0 {
		return fmt.Errorf("rule magnitudes must not be negative")
	}
	if c.NeighborRadius < 0 {
		return fmt.Errorf("neighborRadius must not be negative, got %g", c.NeighborRadius)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file and validates it against
// the embedded schema before unmarshalling.
func LoadConfig(configFile string) (*Config, error) {
	sch, err := jsonschema.CompileString("config.schema.json", configSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Missing keys fall back to the defaults
	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
