package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/craftdex/internal/data"
	"github.com/udisondev/craftdex/internal/db"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Load a YAML catalog into PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			catalog, err := data.LoadCatalog(args[0])
			if err != nil {
				return err
			}

			dsn := a.cfg.Database.DSN()
			database, err := db.New(ctx, dsn)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer database.Close()

			if err := db.RunMigrations(ctx, dsn); err != nil {
				return fmt.Errorf("running migrations: %w", err)
			}

			repo := db.NewItemRepository(database.Pool())
			if err := repo.UpsertAll(ctx, catalog.Items()); err != nil {
				return fmt.Errorf("importing items: %w", err)
			}

			slog.Info("catalog imported", "items", catalog.Len())
			return nil
		},
	}
}
