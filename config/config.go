// Package config loads run configuration from a YAML file and maps it onto
// engine options. A test binary typically merges this with command-line
// flags, letting flags win.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/microunit/microunit/framework/engine"
)

// RunConfig mirrors the YAML run-configuration file. PrintTime is a pointer
// so "absent" and "false" stay distinguishable when merging with flags.
type RunConfig struct {
	Filter          string `yaml:"filter"`
	Shuffle         bool   `yaml:"shuffle"`
	Seed            int64  `yaml:"seed"`
	Repeat          int    `yaml:"repeat"`
	PrintTime       *bool  `yaml:"print_time"`
	BreakOnFailure  bool   `yaml:"break_on_failure"`
	AlsoRunDisabled bool   `yaml:"also_run_disabled"`
	LogFile         string `yaml:"log_file"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file %q", path)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "could not parse config file %q", path)
	}
	if cfg.Repeat < 0 {
		return nil, errors.Errorf("config file %q: repeat must not be negative", path)
	}
	return &cfg, nil
}

// Options maps the configuration onto engine options.
func (c *RunConfig) Options() engine.Options {
	opts := engine.Options{
		Filter:          c.Filter,
		Shuffle:         c.Shuffle,
		Seed:            c.Seed,
		Repeat:          c.Repeat,
		BreakOnFailure:  c.BreakOnFailure,
		AlsoRunDisabled: c.AlsoRunDisabled,
	}
	if c.PrintTime != nil {
		opts.NoPrintTime = !*c.PrintTime
	}
	return opts
}
