package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the interaction pipeline. All values have
// working defaults; a YAML file only needs to override what it changes.
type Config struct {
	Net      NetConfig      `yaml:"net"`
	Mapping  MappingConfig  `yaml:"mapping"`
	Presence PresenceConfig `yaml:"presence"`
	Forces   ForceConfig    `yaml:"forces"`
	Spawn    SpawnConfig    `yaml:"spawn"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Sim      SimConfig      `yaml:"sim"`
}

// NetConfig describes the datagram input channel.
type NetConfig struct {
	ListenAddr  string `yaml:"listen_addr"`
	MaxDatagram int    `yaml:"max_datagram"`
}

// MappingConfig covers landmark-to-world conversion and smoothing.
// DepthBase and DepthScale form the apparent-size depth heuristic:
// offset = DepthBase - handSize*DepthScale.
type MappingConfig struct {
	Scale      float32 `yaml:"scale"`
	YOffset    float32 `yaml:"y_offset"`
	DepthBase  float32 `yaml:"depth_base"`
	DepthScale float32 `yaml:"depth_scale"`
	SmoothRate float32 `yaml:"smooth_rate"`
	Workers    int     `yaml:"workers"`
}

type PresenceConfig struct {
	FadeTimeout float64 `yaml:"fade_timeout"`
}

// ForceConfig tunes the gesture-driven force field.
type ForceConfig struct {
	AttractStrength float32 `yaml:"attract_strength"`
	MinDistanceSq   float32 `yaml:"min_distance_sq"`
	WindStrength    float32 `yaml:"wind_strength"`
	WindAlignment   float32 `yaml:"wind_alignment"`
}

type SpawnConfig struct {
	Height    float32 `yaml:"height"`
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	BoxSize   float32 `yaml:"box_size"`
	Density   float32 `yaml:"density"`
}

type PhysicsConfig struct {
	Gravity        float32 `yaml:"gravity"`
	GroundLevel    float32 `yaml:"ground_level"`
	Restitution    float32 `yaml:"restitution"`
	GroundFriction float32 `yaml:"ground_friction"`
}

type SimConfig struct {
	TPS int `yaml:"tps"`
}

// Default returns the reference tuning of the pipeline.
func Default() Config {
	return Config{
		Net: NetConfig{
			ListenAddr:  "127.0.0.1:5005",
			MaxDatagram: 65536,
		},
		Mapping: MappingConfig{
			Scale:      20.0,
			YOffset:    3.0,
			DepthBase:  20.0,
			DepthScale: 80.0,
			SmoothRate: 40.0,
			Workers:    2,
		},
		Presence: PresenceConfig{
			FadeTimeout: 0.5,
		},
		Forces: ForceConfig{
			AttractStrength: 50000.0,
			MinDistanceSq:   1.0,
			WindStrength:    1500.0,
			WindAlignment:   0.5,
		},
		Spawn: SpawnConfig{
			Height:    15.0,
			Amplitude: 5.0,
			Frequency: 10.0,
			BoxSize:   5.0,
			Density:   5.0,
		},
		Physics: PhysicsConfig{
			Gravity:        -9.81,
			GroundLevel:    -5.0,
			Restitution:    0.1,
			GroundFriction: 1.0,
		},
		Sim: SimConfig{
			TPS: 60,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that would break the pipeline's numeric
// guarantees (zero tick rate, non-positive distance floor, ...).
func (c *Config) Validate() error {
	if c.Net.ListenAddr == "" {
		return fmt.Errorf("net.listen_addr must not be empty")
	}
	if c.Net.MaxDatagram <= 0 {
		return fmt.Errorf("net.max_datagram must be positive, got %d", c.Net.MaxDatagram)
	}
	if c.Mapping.Scale <= 0 {
		return fmt.Errorf("mapping.scale must be positive, got %g", c.Mapping.Scale)
	}
	if c.Mapping.SmoothRate <= 0 {
		return fmt.Errorf("mapping.smooth_rate must be positive, got %g", c.Mapping.SmoothRate)
	}
	if c.Mapping.Workers <= 0 {
		return fmt.Errorf("mapping.workers must be positive, got %d", c.Mapping.Workers)
	}
	if c.Presence.FadeTimeout <= 0 {
		return fmt.Errorf("presence.fade_timeout must be positive, got %g", c.Presence.FadeTimeout)
	}
	if c.Forces.MinDistanceSq <= 0 {
		return fmt.Errorf("forces.min_distance_sq must be positive, got %g", c.Forces.MinDistanceSq)
	}
	if c.Forces.WindAlignment < -1 || c.Forces.WindAlignment > 1 {
		return fmt.Errorf("forces.wind_alignment must be in [-1,1], got %g", c.Forces.WindAlignment)
	}
	if c.Spawn.BoxSize <= 0 {
		return fmt.Errorf("spawn.box_size must be positive, got %g", c.Spawn.BoxSize)
	}
	if c.Spawn.Density <= 0 {
		return fmt.Errorf("spawn.density must be positive, got %g", c.Spawn.Density)
	}
	if c.Sim.TPS <= 0 {
		return fmt.Errorf("sim.tps must be positive, got %d", c.Sim.TPS)
	}
	return nil
}

// Delta returns the fixed simulation step in seconds.
func (c *Config) Delta() float32 {
	return 1.0 / float32(c.Sim.TPS)
}
