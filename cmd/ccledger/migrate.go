package main

import (
	"fmt"

	"github.com/SscSPs/community_currency/internal/platform/config"
	"github.com/SscSPs/community_currency/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply PostgreSQL schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL must be set to run migrations")
		}

		applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger)
		if err != nil {
			return err
		}
		if applied {
			cmd.Println("migrations applied")
		} else {
			cmd.Println("no new migrations")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
