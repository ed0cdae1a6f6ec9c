// Package config loads settings for the calc command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// Config is the command configuration.
type Config struct {
	// Angle is the initial angle mode, deg or rad.
	Angle string `yaml:"angle"`
	History struct {
		// Path is the SQLite history database. If empty, history is kept
		// only for the life of the process.
		Path string `yaml:"path"`
	} `yaml:"history"`
	Log struct {
		// Level is a zerolog level name.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used when there is no file.
func Default() Config {
	var c Config
	c.Angle = "deg"
	c.Log.Level = "warn"
	return c
}

// Load reads a YAML configuration file over the defaults. A missing file is
// not an error when path is empty.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("config file %s does not exist", path)
		}
		return c, fmt.Errorf("reading config: %w", err)
	}
	if err := Parse(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML into c and validates the result. Keys absent from b keep
// their values in c.
func Parse(b []byte, c *Config) error {
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if _, err := c.AngleMode(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// AngleMode returns the configured angle mode.
func (c Config) AngleMode() (calc.AngleMode, error) {
	if c.Angle == "" {
		return calc.Degrees, nil
	}
	return calc.ParseAngleMode(c.Angle)
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.WarnLevel, nil
	}
	l, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.WarnLevel, fmt.Errorf("bad log level: %w", err)
	}
	return l, nil
}
