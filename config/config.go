// Package config provides configuration loading and access for the swarm.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/swarm/swarm"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Text       TextConfig       `yaml:"text"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds assignment and integration constants.
type PhysicsConfig struct {
	StepDT             float64 `yaml:"step_dt"`
	GridCellSize       float64 `yaml:"grid_cell_size"`
	SearchReach        int     `yaml:"search_reach"` // 2 = 5x5 cell block
	MouseRadius        float64 `yaml:"mouse_radius"`
	RepulsionGain      float64 `yaml:"repulsion_gain"`
	FormingGain        float64 `yaml:"forming_gain"`
	FloatingRepulsion  float64 `yaml:"floating_repulsion"`
	BreathingAmplitude float64 `yaml:"breathing_amplitude"`
	BreathingPhase     float64 `yaml:"breathing_phase"`
}

// PopulationConfig holds the particle count and type table.
type PopulationConfig struct {
	Count    int             `yaml:"count"`
	Profiles []ProfileConfig `yaml:"profiles"`
}

// ProfileConfig describes one particle type. Ranges are [min, span].
type ProfileConfig struct {
	Name       string     `yaml:"name"`
	Weight     float64    `yaml:"weight"`
	MaxSpeed   float64    `yaml:"max_speed"`
	Attraction float64    `yaml:"attraction"`
	Size       [2]float64 `yaml:"size,flow"`
	Friction   [2]float64 `yaml:"friction,flow"`
	Ease       [2]float64 `yaml:"ease,flow"`
}

// TextConfig holds target shape generation parameters.
type TextConfig struct {
	Messages       []string `yaml:"messages,flow"`
	Height         int      `yaml:"height"`          // rendered glyph height in pixels
	SampleGap      int      `yaml:"sample_gap"`      // pixels between sampled targets
	AlphaThreshold int      `yaml:"alpha_threshold"` // minimum coverage to emit a target
}

// RenderConfig holds display colors as [r, g, b].
type RenderConfig struct {
	Background    [3]uint8 `yaml:"background,flow"`
	FormingColor  [3]uint8 `yaml:"forming_color,flow"`
	FloatingColor [3]uint8 `yaml:"floating_color,flow"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulation time per stats window
	PerfWindow  int     `yaml:"perf_window"`  // updates averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32     float32
	ScreenH32     float32
	TicksPerStats int32 // Telemetry.StatsWindow / Physics.StepDT
	ProfileIndex  map[string]swarm.ParticleType
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file; lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first setting that the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen: width and height must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Physics.StepDT <= 0:
		return fmt.Errorf("physics.step_dt: must be positive, got %v", c.Physics.StepDT)
	case c.Physics.GridCellSize <= 0:
		return fmt.Errorf("physics.grid_cell_size: must be positive, got %v", c.Physics.GridCellSize)
	case c.Physics.SearchReach < 0:
		return fmt.Errorf("physics.search_reach: must not be negative, got %d", c.Physics.SearchReach)
	case c.Population.Count < 0:
		return fmt.Errorf("population.count: must not be negative, got %d", c.Population.Count)
	case len(c.Population.Profiles) == 0:
		return fmt.Errorf("population.profiles: at least one profile required")
	case c.Text.SampleGap <= 0:
		return fmt.Errorf("text.sample_gap: must be positive, got %d", c.Text.SampleGap)
	case c.Text.AlphaThreshold < 0 || c.Text.AlphaThreshold > 255:
		return fmt.Errorf("text.alpha_threshold: must be in [0,255], got %d", c.Text.AlphaThreshold)
	}

	for i, p := range c.Population.Profiles {
		if _, err := parseParticleType(p.Name); err != nil {
			return fmt.Errorf("population.profiles[%d]: %w", i, err)
		}
		if p.Friction[0] <= 0 || p.Friction[0]+p.Friction[1] > 1 {
			return fmt.Errorf("population.profiles[%d].friction: range must lie in (0,1], got %v", i, p.Friction)
		}
		if p.MaxSpeed <= 0 {
			return fmt.Errorf("population.profiles[%d].max_speed: must be positive, got %v", i, p.MaxSpeed)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	ticks := int32(math.Round(c.Telemetry.StatsWindow / c.Physics.StepDT))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerStats = ticks

	c.Derived.ProfileIndex = make(map[string]swarm.ParticleType, len(c.Population.Profiles))
	for _, p := range c.Population.Profiles {
		t, _ := parseParticleType(p.Name)
		c.Derived.ProfileIndex[p.Name] = t
	}
}

func parseParticleType(name string) (swarm.ParticleType, error) {
	for _, t := range []swarm.ParticleType{swarm.Scout, swarm.Anchor, swarm.Drifter} {
		if t.String() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown particle type %q", name)
}

// SwarmParams converts the physics section to simulation constants.
func (c *Config) SwarmParams() swarm.Params {
	p := c.Physics
	return swarm.Params{
		StepDT:             float32(p.StepDT),
		GridCellSize:       float32(p.GridCellSize),
		SearchReach:        p.SearchReach,
		MouseRadius:        float32(p.MouseRadius),
		RepulsionGain:      float32(p.RepulsionGain),
		FormingGain:        float32(p.FormingGain),
		FloatingRepulsion:  float32(p.FloatingRepulsion),
		BreathingAmplitude: float32(p.BreathingAmplitude),
		BreathingPhase:     float32(p.BreathingPhase),
	}
}

// Profiles converts the population table to particle profiles,
// preserving the configured draw order.
func (c *Config) Profiles() []swarm.Profile {
	out := make([]swarm.Profile, 0, len(c.Population.Profiles))
	for _, p := range c.Population.Profiles {
		out = append(out, swarm.Profile{
			Type:       c.Derived.ProfileIndex[p.Name],
			Weight:     float32(p.Weight),
			MaxSpeed:   float32(p.MaxSpeed),
			Attraction: float32(p.Attraction),
			Size:       toRange(p.Size),
			Friction:   toRange(p.Friction),
			Ease:       toRange(p.Ease),
		})
	}
	return out
}

func toRange(r [2]float64) swarm.Range {
	return swarm.Range{Min: float32(r[0]), Span: float32(r[1])}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// YAML returns the configuration encoded as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}
