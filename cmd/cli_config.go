package cmd

import (
	"os"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/engine"
	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// loadConfig loads the service configuration from a YAML file. A missing
// file yields the defaults.
func loadConfig(path string) (*engine.Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	config := &engine.Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	// Try to read the file, but allow it to not exist
	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, err
	}

	return config, nil
}
