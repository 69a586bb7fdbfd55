package commands

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/claimdesk/crudgen/internal/config"
	"github.com/claimdesk/crudgen/internal/gen"
)

var (
	genOut string
	genPkg string
	genAll bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [entity...]",
	Short: "Generate the CRUD artifacts for the named entities",
	Long: `Generate renders all artifacts for each named entity config into the
output directory: types, store, actions, client, validation and views.
Generated files overwrite their previous versions; nothing else in the
output directory is touched.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOut, "out", "gen", "directory the artifacts are written under")
	generateCmd.Flags().StringVar(&genPkg, "pkg", "", "Go import path of the output directory")
	generateCmd.Flags().BoolVar(&genAll, "all", false, "generate every config in the config directory")
	generateCmd.MarkFlagRequired("pkg")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log.SetFlags(0)
	log.SetPrefix("crudgen: ")

	names := args
	if genAll {
		names = config.Available(configDir)
	}
	if len(names) == 0 {
		return errors.New("no entities named; pass entity names or --all")
	}

	manifests, err := gen.GenerateAll(configDir, names, gen.Options{
		OutDir: genOut,
		Pkg:    genPkg,
		Logf:   log.Printf,
	})
	if err != nil {
		return err
	}

	files := 0
	for _, m := range manifests {
		files += len(m.Files)
	}
	log.Printf("generated %d files for %d entities", files, len(manifests))
	return nil
}
