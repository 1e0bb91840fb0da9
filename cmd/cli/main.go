package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/oncall-rota/cmd/cli/commands"
	"github.com/jakechorley/oncall-rota/pkg/utils/logging"
)

var (
	env         string
	configPath  string
	databaseURL string
	debug       bool
	app         *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "cli",
		Short:        "On-call rota CLI - Generate fair on-call schedules",
		Long:         `A CLI tool for generating on-call schedules from people's availability and tracking their workload across runs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := commands.ApplyEnv(cmd.Flags()); err != nil {
				return err
			}
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
				if app.Logger != nil {
					app.Logger.Sync()
				}
			}
		},
	}

	// Every flag can also be set through its ROTA_ environment variable, e.g. ROTA_DATABASE_URL
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "local", "Environment name, used for log file naming")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: search for rota.yaml)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log debug output to the console")

	app = &commands.AppContext{}
	rootCmd.AddCommand(commands.ScheduleCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.WorkloadCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and the shared command context
func initApp() error {
	logger, err := logging.InitLogger(env, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	app.Logger = logger
	app.Ctx = context.Background()
	app.ConfigPath = configPath
	app.DatabaseURL = databaseURL

	return nil
}
