package config

import "fmt"

// ServerConfig configures the HTTP planning service.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	return nil
}
