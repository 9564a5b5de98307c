package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/engine"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/settings"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// configCmd represents the config command group
//
//nolint:gochecknoglobals // Cobra commands are typically global
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the settings document",
	Long:  `Commands that read or write the settings document directly through the configured storage medium.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Keep stdout clean for JSON output unless explicitly set via --log-level
		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(logrus.ErrorLevel)
		}
		return nil
	},
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the settings document",
	Long:  `Print the current settings document. A missing or malformed document is replaced by the defaults first.`,
	RunE:  runConfigShow,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Print the default settings document",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printDocument(cmd.OutOrStdout(), settings.Default())
	},
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the settings document with the defaults",
	RunE:  runConfigReset,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configPatchCmd = &cobra.Command{
	Use:   "patch <json | @file | ->",
	Short: "Merge a partial document into the settings document",
	Long: `Merge a JSON object into the settings document. Objects merge recursively;
arrays and scalars replace the current value.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigPatch,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings document for consistency",
	Long:  `Check folder tree acyclicity, derived paths, unique identifiers and bottom-bar references.`,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configDefaultCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configPatchCmd)
	configCmd.AddCommand(configValidateCmd)
}

// openStore loads the service configuration and opens its document store
func openStore() (*settings.Store, storage.Medium, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, nil, err
	}

	return engine.OpenStore(logger, &cfg.Storage)
}

// closeMedium releases media that hold connections
func closeMedium(medium storage.Medium) {
	if closer, ok := medium.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.WithError(err).Error("Failed to close storage medium")
		}
	}
}

func printDocument(w io.Writer, doc *settings.Document) error {
	data, err := settings.Encode(doc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	return printDocument(cmd.OutOrStdout(), store.Load(cmd.Context()))
}

func runConfigReset(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	if err := store.ResetToDefault(cmd.Context()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset to defaults (%s)\n", medium.Describe())

	return nil
}

func runConfigPatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	body, err := readArgument(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	if err := store.PatchJSON(cmd.Context(), body); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration updated")

	return nil
}

// readArgument resolves an inline value, @file or - (stdin)
func readArgument(stdin io.Reader, arg string) ([]byte, error) {
	switch {
	case arg == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		return os.ReadFile(strings.TrimPrefix(arg, "@")) //nolint:gosec // User-provided patch file path
	default:
		return []byte(arg), nil
	}
}

// errInconsistentDocument is returned by validate when any check fails
var errInconsistentDocument = errors.New("settings document is inconsistent")

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	_, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	// Read the medium directly: Load would silently replace a broken document.
	data, err := medium.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("%w: %w", settings.ErrReadFailure, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("%w: not valid JSON", settings.ErrInvalidDocument)
	}

	doc, err := settings.Decode(data)
	if err != nil {
		return err
	}

	if err := catalog.New(doc).Validate(); err != nil {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", medium.Describe(), err)
		return fmt.Errorf("%w: %w", errInconsistentDocument, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: valid (%d folders, %d apps)\n", medium.Describe(), len(doc.Folders), len(doc.Apps))

	return nil
}
