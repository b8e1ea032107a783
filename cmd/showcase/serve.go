package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	showcasehttp "github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/http"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the blog pages, JSON API and raw documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				opts.config.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func runServe(ctx context.Context, opts *rootOptions) error {
	module, err := opts.build(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	cfg := opts.config
	apiCfg := showcasehttp.Config{
		Posts:       module.Service,
		Source:      module.Source,
		Registry:    module.Registry,
		Renderer:    module.Renderer,
		ListingPath: cfg.Server.ListingPath,
		Logger:      logging.HTTPLogger(module.Provider),
	}
	if module.Catalog != nil {
		apiCfg.Catalog = module.Catalog
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      showcasehttp.NewAPI(apiCfg).Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		module.Logger.Info("showcase.serve.listening", "addr", cfg.Server.Addr, "pipeline", module.Service.Pipeline().Name())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	module.Logger.Info("showcase.serve.shutdown")
	return server.Shutdown(shutdownCtx)
}
