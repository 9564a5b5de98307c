package redis

import (
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewOptions converts the configured address into go-redis options.
func NewOptions(cfg *Config) (*redis.Options, error) {
	if strings.HasPrefix(cfg.Address, "redis://") || strings.HasPrefix(cfg.Address, "rediss://") {
		opt, err := redis.ParseURL(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}

		applyTimeout(opt, cfg.Timeout)

		return opt, nil
	}

	opt := &redis.Options{Addr: cfg.Address}
	applyTimeout(opt, cfg.Timeout)

	return opt, nil
}

func applyTimeout(opt *redis.Options, timeout time.Duration) {
	if timeout <= 0 {
		return
	}

	opt.DialTimeout = timeout
	opt.ReadTimeout = timeout
	opt.WriteTimeout = timeout
}

// NewClient creates a Redis client for the configured address.
func NewClient(cfg *Config) (*redis.Client, error) {
	opt, err := NewOptions(cfg)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opt), nil
}
