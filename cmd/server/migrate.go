package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Inkwell/internal/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	for _, sub := range []struct{ name, short string }{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Show applied and pending migrations"},
	} {
		command := sub.name
		cmd.AddCommand(&cobra.Command{
			Use:   command,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}

				st, err := openStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer func() { _ = st.Close() }()

				if cfg.DBDriver == config.DriverSQLite {
					if command != "up" {
						return fmt.Errorf("migrate %s is not supported for sqlite; the schema is derived from the models", command)
					}
					return st.migrateUp()
				}
				return runGoose(st.sqlDB, command)
			},
		})
	}

	return cmd
}
