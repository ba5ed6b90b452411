package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gorustyt/gomeshfield/common"
	"github.com/gorustyt/gomeshfield/isocurve"
	"github.com/gorustyt/gomeshfield/winding"
)

type Config struct {
	Parallel common.Parallel   `yaml:"parallel"`
	Contour  *ContourConfig    `yaml:"contour"`
	Winding  *WindingConfig    `yaml:"winding"`
	Log      common.LogOptions `yaml:"log"`
}

type ContourConfig struct {
	// Normalize scales the field into [0,1] first; iso values are then fractions.
	Normalize bool      `yaml:"normalize"`
	Levels    []float64 `yaml:"levels"`
	// Count evenly spaced levels are used when Levels is empty.
	Count         int     `yaml:"count"`
	JoinTolerance float64 `yaml:"join_tolerance"`
}

type WindingConfig struct {
	VertexThreshold int `yaml:"vertex_threshold"`
}

func (cfg *ContourConfig) Reset() {
	cfg.Normalize = true
	cfg.Levels = nil
	cfg.Count = 1
	cfg.JoinTolerance = isocurve.DefaultJoinTolerance
}

func (cfg *WindingConfig) Reset() {
	cfg.VertexThreshold = common.DefaultParallelThreshold
}

func (cfg *Config) Reset() {
	cfg.Parallel = common.DefaultParallel()
	cfg.Contour.Reset()
	cfg.Winding.Reset()
	cfg.Log = common.DefaultLogOptions()
}

func NewConfig() *Config {
	c := &Config{
		Contour: &ContourConfig{},
		Winding: &WindingConfig{},
	}
	c.Reset()
	return c
}

// Parse reads YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Contour == nil {
		c.Contour = &ContourConfig{}
		c.Contour.Reset()
	}
	if c.Winding == nil {
		c.Winding = &WindingConfig{}
		c.Winding.Reset()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

func (cfg *Config) Validate() error {
	if cfg.Parallel.Threshold < 0 {
		return fmt.Errorf("config: parallel.threshold %d is negative", cfg.Parallel.Threshold)
	}
	if cfg.Winding.VertexThreshold < 0 {
		return fmt.Errorf("config: winding.vertex_threshold %d is negative", cfg.Winding.VertexThreshold)
	}
	if len(cfg.Contour.Levels) == 0 && cfg.Contour.Count < 1 {
		return fmt.Errorf("config: contour needs levels or a positive count")
	}
	if cfg.Contour.JoinTolerance < 0 {
		return fmt.Errorf("config: contour.join_tolerance %g is negative", cfg.Contour.JoinTolerance)
	}
	for _, l := range cfg.Contour.Levels {
		if !common.IsFinite(l) {
			return fmt.Errorf("config: contour level %g is not finite", l)
		}
	}
	return nil
}

// IsoValues returns the configured levels, or Count levels spread over
// (lo, hi).
func (cfg *ContourConfig) IsoValues(lo, hi float64) []float64 {
	if len(cfg.Levels) > 0 {
		return cfg.Levels
	}
	return isocurve.Levels(lo, hi, cfg.Count)
}

func (cfg *Config) NewExtractor(log *zap.Logger) *isocurve.Extractor {
	return isocurve.NewExtractor(
		isocurve.WithParallel(cfg.Parallel),
		isocurve.WithLogger(log))
}

func (cfg *Config) NewClassifier(log *zap.Logger) *winding.Classifier {
	return winding.NewClassifier(
		winding.WithParallel(cfg.Parallel),
		winding.WithVertexThreshold(cfg.Winding.VertexThreshold),
		winding.WithLogger(log))
}
