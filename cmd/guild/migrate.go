package main

import (
	"context"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/guildhall/internal/guild/app"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations to the configured database and exit.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	cmd.Println("Running migrations...")
	db, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("driver", cfg.DatabaseDriver).Wrap(err)
	}
	defer func() { _ = db.Close() }()

	cmd.Println("Migrations completed successfully")
	return nil
}
