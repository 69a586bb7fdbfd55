package commands

import (
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	configDir string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crudgen",
	Short: "CRUD artifact generator",
	Long: `crudgen reads entity configs and generates the full CRUD vertical
slice for each one: record types, the shared state container, remote
actions, the data client, validation and the dashboard pages.

Entity configs are JSON files named after their entity, one per file,
living in the config directory.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "crud-config", "directory holding the entity configs")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
