// Package config provides configuration file support for trajlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trajlog-project/trajlog/pkg/errclass"
)

// FileName is the per-project configuration file looked up by Load.
const FileName = "trajlog.yaml"

// Config represents the trajlog configuration.
type Config struct {
	Converter Converter     `yaml:"converter"`
	Artifacts Artifacts     `yaml:"artifacts"`
	Intervals Intervals     `yaml:"intervals"`
	Logging   LoggingConfig `yaml:"logging"`
}

// Converter configures the external trajectory-conversion tool.
type Converter struct {
	// Command is the converter binary, resolved via PATH.
	Command string `yaml:"command"`
	// Subcommand is the conversion mode passed as the first argument.
	Subcommand string `yaml:"subcommand"`
	// SelectionGroup is fed to the converter on stdin to pick the output group.
	SelectionGroup string `yaml:"selection_group"`
}

// Artifacts names the per-clone files the collector looks for.
type Artifacts struct {
	Trajectory string `yaml:"trajectory"`
	Topology   string `yaml:"topology"`
	// ListingExt replaces the trajectory extension to derive the
	// frame-listing path.
	ListingExt string `yaml:"listing_ext"`
}

// Intervals holds the sampling expectations, in picoseconds.
type Intervals struct {
	// Sample is the fallback inter-frame interval used when a group has
	// too few timestamps to infer one.
	Sample uint64 `yaml:"sample"`
	// Checkpoint is the boundary the final timestamp must land on.
	Checkpoint uint64 `yaml:"checkpoint"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Converter: Converter{
			Command:        "gmx",
			Subcommand:     "trjconv",
			SelectionGroup: "1",
		},
		Artifacts: Artifacts{
			Trajectory: "traj_comp.xtc",
			Topology:   "topol.tpr",
			ListingExt: ".pdb",
		},
		Intervals: Intervals{
			Sample:     100,
			Checkpoint: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads trajlog.yaml from dir, falling back to defaults when the file
// does not exist. An unreadable or invalid file is a fatal configuration
// error, never silently ignored.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile loads configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errclass.ErrConfigInvalid.WithMessagef("read %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errclass.ErrConfigInvalid.WithMessagef("parse %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Converter.Command == "" {
		return errclass.ErrConfigInvalid.WithMessage("converter.command must not be empty")
	}
	if c.Intervals.Sample == 0 {
		return errclass.ErrConfigInvalid.WithMessage("intervals.sample must be positive")
	}
	if c.Intervals.Checkpoint == 0 {
		return errclass.ErrConfigInvalid.WithMessage("intervals.checkpoint must be positive")
	}
	if c.Artifacts.ListingExt == "" || c.Artifacts.ListingExt[0] != '.' {
		return errclass.ErrConfigInvalid.WithMessagef("artifacts.listing_ext %q must start with a dot", c.Artifacts.ListingExt)
	}
	return nil
}

// Save writes configuration to trajlog.yaml under dir.
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
