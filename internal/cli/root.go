// Package cli holds the logyourbody commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	envName    string
)

var rootCmd = &cobra.Command{
	Use:   "logyourbody",
	Short: "LogYourBody backend: body metrics, progress photos and timelines",
	Long: `logyourbody serves the JSON API behind the LogYourBody apps and can
run the timeline engine offline over exported records.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&envName, "env", "development", "environment [prod | production | dev | development]")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(timelineCmd)
}
