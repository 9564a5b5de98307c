package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Build-time variables for version info
var (
	// Release is the current release version
	Release = "dev"
	// GitCommit is the git commit hash
	GitCommit = "none"
)

// versionInfo is the machine-readable form of the version output
type versionInfo struct {
	Release   string `json:"release"`
	GitCommit string `json:"gitCommit"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

//nolint:gochecknoglobals // Cobra commands are typically global
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fairwindsk-settings version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := versionInfo{
			Release:   Release,
			GitCommit: GitCommit,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}

		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nCommit: %s\nGo: %s\nOS/Arch: %s\n",
			info.Release, info.GitCommit, info.GoVersion, info.Platform)

		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "Print version information as JSON")
}
