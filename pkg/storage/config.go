package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/redis"
)

// Storage types
const (
	TypeFile   = "file"
	TypeRedis  = "redis"
	TypeMemory = "memory"
)

// DefaultFileName is the document file name inside the config directory.
const DefaultFileName = "fairwindsk.json"

// Config selects and configures the persistence medium
type Config struct {
	Type  string       `yaml:"type" default:"file" validate:"oneof=file redis memory"`
	File  FileConfig   `yaml:"file"`
	Redis redis.Config `yaml:"redis"`
}

// FileConfig configures the file medium
type FileConfig struct {
	// Path overrides the document location. Defaults to ConfigDir/fairwindsk.json.
	Path string `yaml:"path"`
	// ConfigDir is the host's per-installation config directory. Defaults to ~/.signalk.
	ConfigDir string `yaml:"configDir"`
	// Watch reloads the document when the file is edited outside the service.
	Watch bool `yaml:"watch" default:"false"`
}

// DocumentPath returns the resolved document file path.
func (c *FileConfig) DocumentPath() string {
	if c.Path != "" {
		return c.Path
	}

	dir := c.ConfigDir
	if dir == "" {
		dir = ".signalk"
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir)
		}
	}

	return filepath.Join(dir, DefaultFileName)
}

// Validate checks if the storage configuration is valid
func (c *Config) Validate() error {
	switch c.Type {
	case TypeFile, "":
		if c.File.DocumentPath() == "" {
			return ErrFilePathRequired
		}
	case TypeRedis:
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	case TypeMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, c.Type)
	}

	return nil
}
