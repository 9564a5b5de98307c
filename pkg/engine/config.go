// Package engine wires the settings service together: persistence, the
// document store, catalog sync, the HTTP surface and the ops servers.
package engine

import (
	"errors"
	"fmt"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/api"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/auth"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/frontend"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/signalk"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSignalKRequired is returned when a feature needs the Signal K server but none is configured
	ErrSignalKRequired = errors.New("signalk url is required when auth mode is signalk or sync is enabled")
	// ErrNothingToServe is returned when the API is disabled but the editor is enabled
	ErrNothingToServe = errors.New("frontend requires the api to be enabled")
)

// Config represents the complete service configuration
type Config struct {
	// Core settings
	Logging         string `yaml:"logging" default:"info" validate:"oneof=panic fatal warn info debug trace"`
	MetricsAddr     string `yaml:"metricsAddr" default:":9090"`
	HealthCheckAddr string `yaml:"healthCheckAddr"`
	PProfAddr       string `yaml:"pprofAddr"`

	// Persistence medium for the settings document
	Storage storage.Config `yaml:"storage"`

	// API service configuration
	API api.Config `yaml:"api"`

	// Embedded editor configuration
	Frontend frontend.Config `yaml:"frontend"`

	// Write access control
	Auth auth.Config `yaml:"auth"`

	// Host Signal K server
	SignalK signalk.Config `yaml:"signalk"`

	// Catalog sync with the Signal K web apps
	Sync scheduler.Config `yaml:"sync"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Logging); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	if err := c.Storage.Validate(); err != nil {
		return fmt.Errorf("invalid storage configuration: %w", err)
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("invalid api configuration: %w", err)
	}

	if err := c.Frontend.Validate(); err != nil {
		return fmt.Errorf("invalid frontend configuration: %w", err)
	}

	if c.Frontend.Enabled && !c.API.Enabled {
		return ErrNothingToServe
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("invalid auth configuration: %w", err)
	}

	if err := c.Sync.Validate(); err != nil {
		return fmt.Errorf("invalid sync configuration: %w", err)
	}

	if c.needsSignalK() {
		if err := c.SignalK.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrSignalKRequired, err)
		}
	}

	return nil
}

// needsSignalK reports whether any enabled feature talks to the Signal K server
func (c *Config) needsSignalK() bool {
	return c.Auth.Mode == auth.ModeSignalK || c.Sync.Enabled
}
