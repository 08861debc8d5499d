package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all commands.
type Config struct {
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Precision is the number of bits of precision for results. Zero means
	// float64.
	Precision uint `yaml:"precision"`
	// Echo prints each parse tree before its result.
	Echo bool `yaml:"echo"`
	// LogLevel is a zerolog level name.
	LogLevel string `yaml:"log-level"`
}

func defaultConfig() Config {
	return Config{Format: "%g", LogLevel: "info"}
}

// ParseConfig reads a YAML configuration file into c. Settings missing from
// the file keep their current values.
func (c *Config) ParseConfig(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// configValue is a kingpin.Value which loads the configuration file when
// the flag is set.
type configValue struct {
	c *Config
	v string
}

func (f *configValue) Set(s string) error {
	f.v = s
	return f.c.ParseConfig(f.v)
}

func (f *configValue) String() string {
	return f.v
}
