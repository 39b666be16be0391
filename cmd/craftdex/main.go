package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/udisondev/craftdex/internal/config"
	"github.com/udisondev/craftdex/internal/data"
	"github.com/udisondev/craftdex/internal/db"
	"github.com/udisondev/craftdex/internal/recipe"
)

const DefaultConfigPath = "config/craftdex.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// app carries state shared by all subcommands.
type app struct {
	configPath string
	cfg        config.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "craftdex",
		Short:         "Crafting recipe dependency trees and game icon resolution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.loadConfig()
		},
	}

	defaultPath := DefaultConfigPath
	if p := os.Getenv("CRAFTDEX_CONFIG"); p != "" {
		defaultPath = p
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultPath, "path to config file (env CRAFTDEX_CONFIG)")

	root.AddCommand(
		newServeCmd(a),
		newTreeCmd(a),
		newIconCmd(a),
		newImportCmd(a),
	)
	return root
}

// loadConfig reads config and configures slog from its log level.
func (a *app) loadConfig() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", a.configPath, "source", cfg.Source)
	return nil
}

// openSource returns the configured item source and a cleanup func.
// The postgres source is wrapped in a TTL cache.
func (a *app) openSource(ctx context.Context) (recipe.ItemSource, func(), error) {
	switch a.cfg.Source {
	case "postgres":
		dsn := a.cfg.Database.DSN()
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := db.RunMigrations(ctx, dsn); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected")

		repo := db.NewItemRepository(database.Pool())
		return recipe.NewCachedSource(repo, a.cfg.Tree.CacheTTL), database.Close, nil

	default:
		catalog, err := data.LoadCatalog(a.cfg.CatalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("loading catalog: %w", err)
		}
		return catalog, func() {}, nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
