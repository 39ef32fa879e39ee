package main

import (
	"github.com/spf13/cobra"

	"github.com/tenderdesk/tenderdesk/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status]",
	Short: "Apply or inspect database migrations",
	Long: `Apply or inspect the embedded database migrations.

Examples:
  # Apply all pending migrations
  tenderdesk migrate up

  # Roll back the latest migration
  tenderdesk migrate down`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := migrate.Open(cfg.DSN())
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := cmd.Context()
		switch args[0] {
		case "up":
			return migrate.Up(ctx, db)
		case "down":
			return migrate.Down(ctx, db)
		case "status":
			return migrate.Status(ctx, db)
		}
		return cmd.Help()
	},
}
