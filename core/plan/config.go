package plan

import "fmt"

// Config bounds the leveling horizon. The per-task scan limit is
// HorizonFactor times the task's unleveled estimate, clamped to
// [MinHorizonDays, MaxHorizonDays]; the estimator itself is bounded by
// MaxHorizonDays.
type Config struct {
	HorizonFactor  int `json:"horizon_factor"`
	MinHorizonDays int `json:"min_horizon_days"`
	MaxHorizonDays int `json:"max_horizon_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.HorizonFactor == 0 {
		c.HorizonFactor = 8
	}
	if c.MinHorizonDays == 0 {
		c.MinHorizonDays = 366
	}
	if c.MaxHorizonDays == 0 {
		c.MaxHorizonDays = 3660
	}
}

// Validate checks the horizon bounds.
func (c Config) Validate() error {
	if c.HorizonFactor < 1 {
		return fmt.Errorf("horizon_factor must be at least 1")
	}
	if c.MinHorizonDays < 1 {
		return fmt.Errorf("min_horizon_days must be at least 1")
	}
	if c.MaxHorizonDays < c.MinHorizonDays {
		return fmt.Errorf("max_horizon_days must be at least min_horizon_days")
	}
	return nil
}
