// Package config loads the influence pipeline settings from YAML.
package config

import (
	"os"

	"chess-influence/influence"
	"chess-influence/render"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero fields fall back to Default.
type Config struct {
	MaxDepth        int                     `yaml:"max_depth"`
	Weights         []influence.DepthWeight `yaml:"weights"`
	OutputDir       string                  `yaml:"output_dir"`
	CellSize        int                     `yaml:"cell_size"`
	Workers         int                     `yaml:"workers"`
	CaptureBlocking bool                    `yaml:"capture_blocking"`
	LogLevel        string                  `yaml:"log_level"`
}

// Default mirrors the classic three-hop analysis written to computed_game/.
func Default() Config {
	return Config{
		MaxDepth:  3,
		Weights:   influence.DefaultWeights().Entries(),
		OutputDir: "computed_game",
		CellSize:  render.DefaultCellSize,
		Workers:   1,
		LogLevel:  "info",
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration errors; nothing is clamped.
func (c Config) Validate() error {
	w, err := c.DepthWeights()
	if err != nil {
		return err
	}
	if c.MaxDepth <= 0 {
		return errors.Wrapf(influence.ErrInvalidDepth, "config max_depth %d", c.MaxDepth)
	}
	if c.MaxDepth > w.MaxDepth() {
		return errors.Wrapf(influence.ErrDepthBeyondWeights, "config max_depth %d with %d weights", c.MaxDepth, w.MaxDepth())
	}
	if c.Workers < 0 {
		return errors.Errorf("config workers %d must not be negative", c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "config log_level")
	}
	return nil
}

// DepthWeights builds the weight table.
func (c Config) DepthWeights() (influence.Weights, error) {
	w, err := influence.NewWeights(c.Weights...)
	return w, errors.Wrap(err, "config weights")
}

// Calculator builds a Calculator from the weights and propagation options.
// extra options are applied after the configured ones.
func (c Config) Calculator(extra ...influence.Option) (*influence.Calculator, error) {
	w, err := c.DepthWeights()
	if err != nil {
		return nil, err
	}
	var opts []influence.Option
	if c.CaptureBlocking {
		opts = append(opts, influence.WithCaptureBlocking())
	}
	return influence.NewCalculator(w, append(opts, extra...)...), nil
}

// Level is the parsed zerolog level, info if unset.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
