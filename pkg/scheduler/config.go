// Package scheduler keeps the app catalog in step with the Signal K server's
// web apps, on demand and on a cron schedule.
package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/rendering"
	"github.com/robfig/cron/v3"
)

var (
	// ErrInvalidTimeout is returned when the sync timeout is not positive
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// Config defines catalog sync configuration
type Config struct {
	Enabled     bool          `yaml:"enabled" default:"false"`
	Schedule    string        `yaml:"schedule" default:"@every 1h"`
	RunOnStart  bool          `yaml:"runOnStart" default:"true"`
	Timeout     time.Duration `yaml:"timeout" default:"1m"`
	URLTemplate string        `yaml:"urlTemplate" default:"/{{ .Name }}/"`
}

// Validate checks if the sync configuration is valid
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if _, err := parser().Parse(c.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
	}

	if _, err := rendering.NewTemplateEngine(c.URLTemplate); err != nil {
		return fmt.Errorf("invalid urlTemplate: %w", err)
	}

	return nil
}

// parser accepts standard five-field expressions and descriptors such as "@every 1h"
func parser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
