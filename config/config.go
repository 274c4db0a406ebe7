// Package config loads simulation settings from YAML.
package config

import (
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fumin/vqs"
	"github.com/fumin/vqs/ansatz"
	"github.com/fumin/vqs/exact"
	"github.com/fumin/vqs/mclachlan"
)

const (
	DefaultTMax             = 5.0
	DefaultDt               = 0.05
	DefaultRenormalizeEvery = 1
	DefaultOutputDir        = "examples"
)

type Config struct {
	TMax             float64   `yaml:"tmax"`
	Dt               float64   `yaml:"dt"`
	Seed             []float64 `yaml:"seed"`
	Regularization   float64   `yaml:"regularization"`
	RenormalizeEvery int       `yaml:"renormalize_every"`
	OutputDir        string    `yaml:"output_dir"`
	Plots            bool      `yaml:"plots"`
}

func DefaultConfig() *Config {
	seed := ansatz.Seed()
	return &Config{
		TMax:             DefaultTMax,
		Dt:               DefaultDt,
		Seed:             seed[:],
		Regularization:   mclachlan.DefaultRegularization,
		RenormalizeEvery: DefaultRenormalizeEvery,
		OutputDir:        DefaultOutputDir,
		Plots:            true,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func (c *Config) Validate() error {
	switch {
	case !(c.TMax > 0) || math.IsInf(c.TMax, 0):
		return errors.Wrap(vqs.ErrInvalidConfig, fmt.Sprintf("tmax %f", c.TMax))
	case !(c.Dt > 0) || math.IsInf(c.Dt, 0):
		return errors.Wrap(vqs.ErrInvalidConfig, fmt.Sprintf("dt %f", c.Dt))
	case len(c.Seed) != ansatz.NumParams:
		return errors.Wrap(vqs.ErrInvalidConfig, fmt.Sprintf("seed %v", c.Seed))
	case !(c.Regularization >= 0):
		return errors.Wrap(vqs.ErrInvalidConfig, fmt.Sprintf("regularization %f", c.Regularization))
	case c.RenormalizeEvery < 1:
		return errors.Wrap(vqs.ErrInvalidConfig, fmt.Sprintf("renormalize_every %d", c.RenormalizeEvery))
	}
	if _, err := exact.NumSteps(c.TMax, c.Dt); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// GetSeed returns the seed angles.
func (c *Config) GetSeed() ansatz.Params {
	var p ansatz.Params
	copy(p[:], c.Seed)
	return p
}

// RunOptions converts the configuration into simulation options.
func (c *Config) RunOptions() vqs.RunOptions {
	return vqs.NewRunOptions().
		Seed(c.GetSeed()).
		Regularization(c.Regularization).
		RenormalizeEvery(c.RenormalizeEvery)
}
