package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claimdesk/crudgen/internal/config"
	"github.com/claimdesk/crudgen/internal/gen"
	"github.com/claimdesk/crudgen/internal/naming"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entity configs and what they generate",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	names := config.Available(configDir)
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no entity configs in %s\n", configDir)
		return nil
	}
	for _, name := range names {
		cfg, err := config.Load(configDir, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-24s %2d fields  api=/api/%s  pages=%s\n",
			cfg.Name, len(cfg.Fields), naming.ToKebab(cfg.Name), gen.RouteBase(cfg.Name))
	}
	return nil
}
