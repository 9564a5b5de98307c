// Package signalk provides a client for the Signal K server that hosts the
// settings service: its web app catalog and its login status.
package signalk

import (
	"errors"
	"time"
)

// Static errors for configuration validation
var (
	ErrURLRequired = errors.New("URL is required")
)

// Config contains the Signal K server location
type Config struct {
	URL     string        `yaml:"url" default:"http://localhost:3000"`
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrURLRequired
	}

	return nil
}
