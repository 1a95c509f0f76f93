package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/acctflow/acctflow_backend/internal/platform/config"
	"github.com/acctflow/acctflow_backend/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.Up), string(database.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

			if cfg.DatabaseURL == "" {
				return fmt.Errorf("PGSQL_URL is required to run migrations")
			}
			return database.RunMigrations(cfg.DatabaseURL, database.Direction(args[0]))
		},
	}
}
