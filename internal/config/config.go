// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultInputFile is the surface dump the tool was written for.
const DefaultInputFile = "SurfaceInfo.txt"

type Config struct {
	Input struct {
		File        string `yaml:"file"`
		MaxLineSize int    `yaml:"maxLineSize"`
	} `yaml:"input"`

	Output struct {
		// File is where the report is saved. Empty prints it instead.
		File         string `yaml:"file"`
		ShowProgress bool   `yaml:"showProgress"`
	} `yaml:"output"`

	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration at path. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.SetStrict(true)
	// An empty file decodes to io.EOF and leaves every field at its default.
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	// Set default values
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Input.File == "" {
		cfg.Input.File = DefaultInputFile
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return ErrNoInputFile
	}
	if c.Input.MaxLineSize < 0 {
		return ErrInvalidMaxLineSize
	}
	return nil
}
