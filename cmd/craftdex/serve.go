package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/craftdex/internal/api"
	"github.com/udisondev/craftdex/internal/data"
	"github.com/udisondev/craftdex/internal/icon"
	"github.com/udisondev/craftdex/internal/recipe"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) profiles() (map[string]*icon.Profile, error) {
	item, err := a.cfg.Icons.Item.Profile("item")
	if err != nil {
		return nil, err
	}
	large, err := a.cfg.Icons.Large.Profile("large")
	if err != nil {
		return nil, err
	}
	return map[string]*icon.Profile{item.Name: item, large.Name: large}, nil
}

// entities returns the NPC and compendium lookup. The postgres source stores
// only items, so NPCs come from the catalog file when one is readable.
func (a *app) entities(source recipe.ItemSource) api.EntitySource {
	if catalog, ok := source.(*data.Catalog); ok {
		return catalog
	}
	catalog, err := data.LoadCatalog(a.cfg.CatalogPath)
	if err != nil {
		slog.Warn("npc and compendium routes disabled", "catalog", a.cfg.CatalogPath, "error", err)
		return nil
	}
	return catalog
}

func (a *app) serve(ctx context.Context) error {
	profiles, err := a.profiles()
	if err != nil {
		return err
	}

	source, closeSource, err := a.openSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	entities := a.entities(source)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := api.NewServer(api.Config{
		Builder:  recipe.NewBuilder(source, a.cfg.Tree.MaxDepth),
		Items:    source,
		Entities: entities,
		Profiles: profiles,
		IconSize: a.cfg.Tree.IconSize,
		Registry: reg,
		Logger:   slog.Default(),
	})

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.BindAddress, strconv.Itoa(a.cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting HTTP server", "addr", httpServer.Addr, "source", a.cfg.Source)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		slog.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
