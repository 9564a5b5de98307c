package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/catalog"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/scheduler"
	"github.com/OpenFairWind/signalk-fairwindsk-settings/pkg/signalk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command group
//
//nolint:gochecknoglobals // Cobra commands are typically global
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the folder tree and app catalog",
	Long:  `Commands for listing folders and apps and for syncing apps from the Signal K server.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("log-level") {
			logger.SetLevel(logrus.ErrorLevel)
		}
		return nil
	},
}

//nolint:gochecknoglobals // Cobra commands are typically global
var catalogTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the folder tree with the apps in each folder",
	RunE:  runCatalogTree,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var catalogAppsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List every app in the catalog",
	RunE:  runCatalogApps,
}

//nolint:gochecknoglobals // Cobra commands are typically global
var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the catalog with the Signal K server's web apps",
	Long:  `Fetch the web apps published by the Signal K server, add the new ones to their classified folder and refresh the provenance of known ones.`,
	RunE:  runCatalogSync,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogTreeCmd)
	catalogCmd.AddCommand(catalogAppsCmd)
	catalogCmd.AddCommand(catalogSyncCmd)

	// Add dot flag to tree command
	catalogTreeCmd.Flags().Bool("dot", false, "Output in DOT format for graphviz")
}

func runCatalogTree(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	c := catalog.New(store.Load(cmd.Context()))

	if dotFlag, _ := cmd.Flags().GetBool("dot"); dotFlag {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.DOT())
		return nil
	}

	_, _ = fmt.Fprint(cmd.OutOrStdout(), c.Outline())

	return nil
}

func runCatalogApps(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	doc := store.Load(cmd.Context())

	// Print table
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDISPLAY NAME\tFOLDER\tSOURCE\tVERSION\tACTIVE\tURL")

	for _, app := range doc.Apps {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			app.Name, app.DisplayName, app.Folder, app.Source, app.Version, app.Active, app.URL)
	}

	_ = w.Flush()

	return nil
}

func runCatalogSync(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}

	store, medium, err := openStore()
	if err != nil {
		return err
	}
	defer closeMedium(medium)

	client, err := signalk.NewClient(logger, &cfg.SignalK)
	if err != nil {
		return err
	}

	syncer, err := scheduler.NewSyncer(logger, store, client, cfg.Sync.URLTemplate)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, cfg.Sync.Timeout)
	defer cancel()

	result, err := syncer.Run(ctx, scheduler.TriggerManual)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Synced with %s: %d added, %d updated\n", cfg.SignalK.URL, result.Added, result.Updated)

	return nil
}
