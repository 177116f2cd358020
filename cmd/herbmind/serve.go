package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/herbmind/internal/analysis"
	"github.com/thebtf/herbmind/internal/server"
	"github.com/thebtf/herbmind/internal/watcher"
)

// errCatalogChanged ends serve so a supervisor can restart with the new catalog.
var errCatalogChanged = errors.New("catalog files changed, restart required")

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port > 0 {
				a.cfg.Port = port
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides HERBMIND_PORT)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}
	defer a.closeCatalog()

	svc := analysis.New(cat, analysis.Options{
		TopK:           a.cfg.TopK,
		SeverityWindow: a.cfg.SeverityWindow,
	})

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	if a.cfg.WatchData && a.cfg.DSNSource() == "" {
		w, err := watcher.New([]string{a.cfg.SymptomsPath, a.cfg.RemediesPath}, func(c watcher.Change) {
			log.Warn().Str("path", c.Path).Msg("Catalog changed, shutting down to reload")
			cancel(errCatalogChanged)
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to create catalog watcher")
		} else if err := w.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to start catalog watcher")
		} else {
			defer w.Stop()
		}
	}

	log.Info().Str("version", Version).Msg("Starting herbmind")
	if err := server.New(svc).ListenAndServe(ctx, a.cfg.Port); err != nil {
		return err
	}
	if errors.Is(context.Cause(ctx), errCatalogChanged) {
		return errCatalogChanged
	}
	return nil
}
