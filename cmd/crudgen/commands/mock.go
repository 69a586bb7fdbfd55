package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/claimdesk/crudgen/internal/mockapi"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run the development API server",
	Long: `Mock runs an API server that speaks the endpoint convention the
generated clients expect, for any entity, so the generated code can be
exercised before the real backend exists. Records live in memory unless
--db points at a SQLite file.

Settings may also come from the environment: CRUDGEN_MOCK_PORT,
CRUDGEN_MOCK_DB, CRUDGEN_MOCK_TOKEN and CRUDGEN_MOCK_CSRF.`,
	RunE: runMock,
}

func init() {
	mockCmd.Flags().Int("port", 8385, "port to listen on")
	mockCmd.Flags().String("db", "", "SQLite file to persist records in (empty: in-memory)")
	mockCmd.Flags().String("token", "", "only accepted bearer token (empty: accept any non-empty token)")
	mockCmd.Flags().String("csrf", "", "required X-CSRF-Token value on mutations (empty: not enforced)")
	rootCmd.AddCommand(mockCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	v := viper.New()
	v.SetEnvPrefix("CRUDGEN_MOCK")
	v.AutomaticEnv()
	for _, name := range []string{"port", "db", "token", "csrf"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	var store mockapi.Store
	if path := v.GetString("db"); path != "" {
		var err error
		store, err = mockapi.OpenSQLiteStore(path)
		if err != nil {
			return err
		}
	} else {
		store = mockapi.NewMemoryStore()
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", v.GetInt("port"))
	return mockapi.Run(ctx, addr, mockapi.Config{
		Store: store,
		Token: v.GetString("token"),
		CSRF:  v.GetString("csrf"),
	})
}
