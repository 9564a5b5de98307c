// Package redis configures the Redis connection used by the Redis storage medium
package redis

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Define static errors
var (
	ErrAddressRequired = errors.New("redis address is required")
	ErrInvalidKey      = errors.New("redis key must not contain whitespace")
)

// Config holds Redis client configuration
type Config struct {
	// Address is either host:port or a redis:// URL.
	Address string `yaml:"address"`
	Prefix  string `yaml:"prefix" default:"fairwindsk"`
	Key     string `yaml:"key" default:"settings"`
	// Timeout bounds dialing and each read/write; zero keeps the go-redis defaults.
	Timeout time.Duration `yaml:"timeout" default:"5s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrAddressRequired
	}

	if c.Prefix == "" {
		c.Prefix = "fairwindsk"
	}

	if c.Key == "" {
		c.Key = "settings"
	}

	if strings.ContainsAny(c.Prefix+c.Key, " \t\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, c.DocumentKey())
	}

	return nil
}

// PrefixKey adds the configured prefix to a Redis key
func (c *Config) PrefixKey(key string) string {
	if c.Prefix == "" {
		return key
	}

	return fmt.Sprintf("%s:%s", c.Prefix, key)
}

// DocumentKey returns the fully prefixed key holding the settings document
func (c *Config) DocumentKey() string {
	return c.PrefixKey(c.Key)
}
