package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jakechorley/oncall-rota/internal/server"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve schedules over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			cfg, err := app.Config()
			if err != nil {
				return err
			}

			database, err := app.OptionalDatabase()
			if err != nil {
				return err
			}

			var store server.Store
			if database != nil {
				store = database
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, store, app.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")

	return cmd
}
