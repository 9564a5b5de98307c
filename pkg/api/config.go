// Package api serves the settings document, the catalog endpoints and the
// embedded editor over HTTP.
package api

import (
	"errors"
	"strings"
)

var (
	// ErrAPIAddrRequired is returned when API is enabled but no address is configured
	ErrAPIAddrRequired = errors.New("api address is required when API is enabled")
	// ErrInvalidPrefix is returned when the route prefix does not start with '/'
	ErrInvalidPrefix = errors.New("api prefix must start with '/'")
)

// Config represents API service configuration
type Config struct {
	Enabled      bool     `yaml:"enabled" default:"true"`
	Addr         string   `yaml:"addr" default:":3001" validate:"hostname_port"`
	Prefix       string   `yaml:"prefix" default:"/plugins/fairwindsk-settings"`
	AllowOrigins []string `yaml:"allowOrigins" default:"[\"*\"]"`
}

// Validate validates the API configuration
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Addr == "" {
		return ErrAPIAddrRequired
	}

	if c.Prefix != "" && !strings.HasPrefix(c.Prefix, "/") {
		return ErrInvalidPrefix
	}

	return nil
}

// RoutePrefix returns the prefix without a trailing slash
func (c *Config) RoutePrefix() string {
	return strings.TrimRight(c.Prefix, "/")
}
