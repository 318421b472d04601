package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds run settings that may come from a YAML file.
type Config struct {
	Source   string `yaml:"source"`    // path to the source file
	Verbose  bool   `yaml:"verbose"`   // debug logging and procedure dump
	NoColor  bool   `yaml:"no_color"`  // plain diagnostics
	Trace    bool   `yaml:"trace"`     // log every frame dispatch
	MaxSteps int    `yaml:"max_steps"` // instruction limit, 0 = unlimited
}

// Decode reads a Config from r. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads the Config at path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Decode(bytes.NewReader(data))
}

func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}

	return nil
}
