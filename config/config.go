package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/asferrer/project-planner-app/core/metrics"
	"github.com/asferrer/project-planner-app/core/plan"
)

// Config is the service/engine configuration, distinct from the project
// document: it tunes how the planner runs, not what it plans.
type Config struct {
	Logging LoggingConfig  `json:"logging"`
	Planner plan.Config    `json:"planner"`
	Metrics metrics.Config `json:"metrics"`
	Server  ServerConfig   `json:"server"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads the configuration from a JSON or YAML file with environment
// overrides (prefix PLANNER_, "__" as the key separator). An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("PLANNER_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "planner_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Logging.SetDefaults()
	c.Planner.SetDefaults()
	c.Metrics.SetDefaults()
	c.Server.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Planner.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Server.Validate()
}
