// Package config loads the swipe YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olivier-w/swipe/internal/spring"
	"github.com/olivier-w/swipe/internal/swipe"
)

// Config is the top-level YAML configuration.
//
// Keep defaults and validation here so the rest of the code can assume a
// well-formed config.
type Config struct {
	Spring   SpringConfig   `yaml:"spring"`
	Swipe    SwipeConfig    `yaml:"swipe"`
	Viewport ViewportConfig `yaml:"viewport"`
	Frame    FrameConfig    `yaml:"frame"`
	Cues     CuesConfig     `yaml:"cues"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SpringConfig struct {
	Damping                   float64 `yaml:"damping"`
	Mass                      float64 `yaml:"mass"`
	Stiffness                 float64 `yaml:"stiffness"`
	OvershootClamping         bool    `yaml:"overshoot_clamping"`
	RestSpeedThreshold        float64 `yaml:"rest_speed_threshold"`
	RestDisplacementThreshold float64 `yaml:"rest_displacement_threshold"`
}

type SwipeConfig struct {
	VelocityThreshold float64 `yaml:"velocity_threshold"` // points per second
	TiltDegrees       float64 `yaml:"tilt_degrees"`
}

// ViewportConfig maps terminal cells to the point space the engine uses.
type ViewportConfig struct {
	CellWidthPt  float64 `yaml:"cell_width_pt"`
	CellHeightPt float64 `yaml:"cell_height_pt"`
}

type FrameConfig struct {
	FPS          int `yaml:"fps"`
	MaxFrameDtMS int `yaml:"max_frame_dt_ms"` // 0 disables clamping
}

type CuesConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty disables logging
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	sc := spring.DefaultConfig()
	return Config{
		Spring: SpringConfig{
			Damping:                   sc.Damping,
			Mass:                      sc.Mass,
			Stiffness:                 sc.Stiffness,
			OvershootClamping:         sc.OvershootClamping,
			RestSpeedThreshold:        sc.RestSpeedThreshold,
			RestDisplacementThreshold: sc.RestDisplacementThreshold,
		},
		Swipe: SwipeConfig{
			VelocityThreshold: swipe.DefaultVelocityThreshold,
			TiltDegrees:       swipe.DefaultTilt,
		},
		Viewport: ViewportConfig{
			CellWidthPt:  8,
			CellHeightPt: 16,
		},
		Frame: FrameConfig{
			FPS:          60,
			MaxFrameDtMS: 64,
		},
		Cues: CuesConfig{
			Enabled: false,
			Volume:  0.4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.config/swipe/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "swipe", "config.yaml")
}

// LoadConfigFile reads a YAML config file on top of the defaults. Unknown
// fields are rejected.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// ExpandPath expands a leading "~/" to the user's home directory.
func ExpandPath(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// FlagOverrides carries command-line overrides. Each non-nil pointer is
// applied, even if it points at a zero value.
type FlagOverrides struct {
	VelocityThreshold *float64
	TiltDegrees       *float64
	FPS               *int
	CuesEnabled       *bool
	LogLevel          *string
	LogFile           *string
}

// Apply merges the overrides into cfg.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.VelocityThreshold != nil {
		cfg.Swipe.VelocityThreshold = *o.VelocityThreshold
	}
	if o.TiltDegrees != nil {
		cfg.Swipe.TiltDegrees = *o.TiltDegrees
	}
	if o.FPS != nil {
		cfg.Frame.FPS = *o.FPS
	}
	if o.CuesEnabled != nil {
		cfg.Cues.Enabled = *o.CuesEnabled
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFile != nil {
		cfg.Logging.File = *o.LogFile
	}
}

// Validate checks config invariants and returns an error naming the key.
func (c *Config) Validate() error {
	if c.Spring.Mass <= 0 {
		return errors.New("spring.mass must be > 0")
	}
	if c.Spring.Stiffness <= 0 {
		return errors.New("spring.stiffness must be > 0")
	}
	if c.Spring.Damping < 0 {
		return errors.New("spring.damping must be >= 0")
	}
	if c.Spring.Damping == 0 && !c.Spring.OvershootClamping {
		return errors.New("spring.damping must be > 0 unless spring.overshoot_clamping is set")
	}
	if c.Spring.RestSpeedThreshold <= 0 {
		return errors.New("spring.rest_speed_threshold must be > 0")
	}
	if c.Spring.RestDisplacementThreshold <= 0 {
		return errors.New("spring.rest_displacement_threshold must be > 0")
	}

	if c.Swipe.VelocityThreshold < 0 {
		return errors.New("swipe.velocity_threshold must be >= 0")
	}
	if c.Swipe.TiltDegrees < 0 || c.Swipe.TiltDegrees >= 90 {
		return errors.New("swipe.tilt_degrees must be between 0 and 90")
	}

	if c.Viewport.CellWidthPt <= 0 || c.Viewport.CellHeightPt <= 0 {
		return errors.New("viewport.cell_width_pt and viewport.cell_height_pt must be > 0")
	}

	if c.Frame.FPS <= 0 || c.Frame.FPS > 240 {
		return errors.New("frame.fps must be between 1 and 240")
	}
	if c.Frame.MaxFrameDtMS < 0 {
		return errors.New("frame.max_frame_dt_ms must be >= 0")
	}

	if c.Cues.Volume < 0 || c.Cues.Volume > 1 {
		return errors.New("cues.volume must be between 0 and 1")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

// ToSpringConfig converts the file config into the integrator's config.
func (c *Config) ToSpringConfig() spring.Config {
	return spring.Config{
		Damping:                   c.Spring.Damping,
		Mass:                      c.Spring.Mass,
		Stiffness:                 c.Spring.Stiffness,
		OvershootClamping:         c.Spring.OvershootClamping,
		RestSpeedThreshold:        c.Spring.RestSpeedThreshold,
		RestDisplacementThreshold: c.Spring.RestDisplacementThreshold,
	}
}

// ToSwipeConfig builds the controller config for a viewport measured in
// terminal cells.
func (c *Config) ToSwipeConfig(cols, rows int) swipe.Config {
	return swipe.Config{
		Width:             float64(cols) * c.Viewport.CellWidthPt,
		Height:            float64(rows) * c.Viewport.CellHeightPt,
		Tilt:              c.Swipe.TiltDegrees,
		VelocityThreshold: c.Swipe.VelocityThreshold,
		Spring:            c.ToSpringConfig(),
	}
}

// FrameInterval is the time between animation frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Frame.FPS)
}

// MaxFrameDt is the longest step the springs may take, in seconds. Zero
// disables clamping.
func (c *Config) MaxFrameDt() float64 {
	return float64(c.Frame.MaxFrameDtMS) / 1000
}
