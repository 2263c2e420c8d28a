package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/entropylab/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTemperature = 300.0
	DefaultNoise       = 1.0
	DefaultParticles   = 220
	DefaultGrid        = 20
	DefaultFrames      = 600
	DefaultThrottleMS  = 300
	DefaultFPS         = 60
	DefaultTheme       = "ocean"
)

type Config struct {
	Bounds     dynamo.Bounds `yaml:"bounds"`
	Grid       int           `yaml:"grid"`
	Params     dynamo.Params `yaml:"params"`
	Seed       int64         `yaml:"seed"`
	Frames     int           `yaml:"frames"`
	ThrottleMS int           `yaml:"throttle_ms"`
	FPS        int           `yaml:"fps"`
	Theme      string        `yaml:"theme"`
	Timeline   string        `yaml:"timeline,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Bounds: dynamo.DefaultBounds(),
		Grid:   DefaultGrid,
		Params: dynamo.Params{
			Temperature: DefaultTemperature,
			Noise:       DefaultNoise,
			Count:       DefaultParticles,
		},
		Frames:     DefaultFrames,
		ThrottleMS: DefaultThrottleMS,
		FPS:        DefaultFPS,
		Theme:      DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Bounds.Validate(); err != nil {
		return err
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Grid <= 0 {
		return fmt.Errorf("%w: grid %d", dynamo.ErrParameterBounds, c.Grid)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d", dynamo.ErrParameterBounds, c.Frames)
	}
	if c.ThrottleMS < 0 {
		return fmt.Errorf("%w: throttle_ms %d", dynamo.ErrParameterBounds, c.ThrottleMS)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %d", dynamo.ErrParameterBounds, c.FPS)
	}
	return nil
}

func (c *Config) Throttle() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}
