package cmd

import (
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/engine"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the settings service",
	Long:  `Serves the settings document, the catalog endpoints and the editor, and runs the scheduled catalog sync when enabled.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	// Load configuration
	config, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	if err := applyConfigLogLevel(cmd, config.Logging); err != nil {
		return err
	}

	logger.WithField("config", cfgFile).Info("Configuration loaded")

	app, err := engine.NewService(logger, config)
	if err != nil {
		return err
	}

	return app.Run(cmd.Context())
}
