package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dverduzco/monedero/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database schema migrations",
		Long: `Apply any pending schema migrations. Commands run migrations automatically
on startup; this exists to run them explicitly, e.g. after an upgrade.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// initStorage migrates as part of opening the database.
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("Database schema is up to date"))
			return nil
		},
	}
}
