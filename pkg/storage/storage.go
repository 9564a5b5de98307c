package storage

import (
	"fmt"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/redis"
)

// New creates the medium selected by cfg.
func New(cfg *Config) (Medium, error) {
	switch cfg.Type {
	case TypeFile, "":
		return NewFile(cfg.File.DocumentPath()), nil
	case TypeRedis:
		client, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}

		return NewRedis(client, cfg.Redis.DocumentKey()), nil
	case TypeMemory:
		return NewMemory(nil), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.Type)
	}
}
