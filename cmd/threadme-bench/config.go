package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// benchConfig is the benchmark setup, loaded from YAML and overridden by flags.
type benchConfig struct {
	Threads      int  `yaml:"threads"`
	Rounds       int  `yaml:"rounds"`
	Participants int  `yaml:"participants"`
	Generations  int  `yaml:"generations"`
	ThreadLimit  int  `yaml:"thread_limit"`
	PinCPUs      bool `yaml:"pin_cpus"`
	CI           bool `yaml:"ci"`
}

func defaultConfig() benchConfig {
	return benchConfig{
		Threads:      32,
		Rounds:       50,
		Participants: 4,
		Generations:  10_000,
	}
}

// loadConfig reads a YAML file over the defaults. An empty path is allowed.
func loadConfig(path string) (benchConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c benchConfig) validate() error {
	switch {
	case c.Threads <= 0:
		return fmt.Errorf("threads must be positive, got %d", c.Threads)
	case c.Rounds <= 0:
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	case c.Participants <= 0:
		return fmt.Errorf("participants must be positive, got %d", c.Participants)
	case c.Generations <= 0:
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	case c.ThreadLimit < 0:
		return fmt.Errorf("thread_limit must not be negative, got %d", c.ThreadLimit)
	}
	return nil
}
