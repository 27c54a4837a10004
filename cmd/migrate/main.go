package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"neurobiomark/config"
	"neurobiomark/internal/repository/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dsn string
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the database schema",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dsn, "database-url", "", "PostgreSQL DSN (default: DATABASE_URL)")

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := config.NewLogger()
			if dsn == "" {
				dsn = cfg.DBUrl
			}
			db, err := postgres.Open(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			applied, err := postgres.Migrate(cmd.Context(), db, logger)
			if err != nil {
				logger.Error("migration failed", "applied", applied, "err", err)
				return err
			}
			logger.Info("schema up to date", "applied", applied)
			return nil
		},
	})
	return root
}
