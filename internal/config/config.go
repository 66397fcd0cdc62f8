// Package config handles meshtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidConfig is returned by Validate for values outside their range.
var ErrInvalidConfig = errors.New("invalid config")

// Center estimators selectable through KernelConfig.Center.
const (
	CenterMedian      = "median"
	CenterMedianPolys = "median-polys"
	CenterBounds      = "bounds"
	CenterSurface     = "surface"
	CenterVolume      = "volume"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

var (
	validCenters = []string{CenterMedian, CenterMedianPolys, CenterBounds, CenterSurface, CenterVolume}
	validOutputs = []string{OutputText, OutputYAML}
	validLevels  = []string{"debug", "info", "warn", "error"}
	validLogFmts = []string{"console", "json"}
)

// Config holds all meshtool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"` // console or json
	LogFile string `yaml:"log_file"`
}

// KernelConfig selects what the info report computes.
type KernelConfig struct {
	Center     string `yaml:"center"`      // primary center estimator
	PerPolygon bool   `yaml:"per_polygon"` // include per-polygon normal/area/center
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format    string `yaml:"format"`    // text or yaml
	Precision int    `yaml:"precision"` // decimal places in text output
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			LogFile: "",
		},
		Kernel: KernelConfig{
			Center:     CenterMedian,
			PerPolygon: false,
		},
		Output: OutputConfig{
			Format:    OutputText,
			Precision: 4,
		},
	}
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, c.Logging.Level)
	}
	if !slices.Contains(validLogFmts, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, c.Logging.Format)
	}
	if !slices.Contains(validCenters, c.Kernel.Center) {
		return fmt.Errorf("%w: kernel.center %q", ErrInvalidConfig, c.Kernel.Center)
	}
	if !slices.Contains(validOutputs, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q", ErrInvalidConfig, c.Output.Format)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 9 {
		return fmt.Errorf("%w: output.precision %d", ErrInvalidConfig, c.Output.Precision)
	}
	return nil
}
