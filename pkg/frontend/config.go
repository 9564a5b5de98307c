package frontend

// Config represents frontend service configuration. The editor is served by
// the API server under its route prefix.
type Config struct {
	Enabled bool `yaml:"enabled" default:"true"`
}

// Validate validates the frontend configuration
func (c *Config) Validate() error {
	return nil
}
