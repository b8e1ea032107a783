package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/commands"
	catalogcmd "github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/commands/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
)

var errCatalogDisabled = errors.New("catalog is disabled; set catalog.enabled or SHOWCASE_CATALOG_ENABLED")

func newSyncCommand(opts *rootOptions) *cobra.Command {
	var (
		prune   bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync [slug...]",
		Short: "Write post summaries into the SQL catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.config.Catalog.Enabled = true
			return runSync(cmd.Context(), opts, cmd.OutOrStdout(), args, prune, timeout)
		},
	}
	cmd.Flags().BoolVar(&prune, "prune", false, "remove entries for slugs no longer published (full syncs only)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "abort the sync after this duration, e.g. 30s")
	return cmd
}

func runSync(ctx context.Context, opts *rootOptions, out io.Writer, slugs []string, prune bool, timeout time.Duration) error {
	module, err := opts.build(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	if module.Catalog == nil {
		return errCatalogDisabled
	}

	var result catalog.SyncResult
	handlerOpts := []commands.HandlerOption[catalogcmd.SyncCatalogCommand]{}
	if timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[catalogcmd.SyncCatalogCommand](timeout))
	}

	handler := catalogcmd.NewSyncCatalogHandler(catalogcmd.HandlerConfig{
		Loader:   module.Loader,
		Catalog:  module.Catalog,
		Logger:   logging.CommandLogger(module.Provider, "catalog"),
		OnResult: func(r catalog.SyncResult) { result = r },
	}, handlerOpts...)

	if err := handler.Execute(ctx, catalogcmd.SyncCatalogCommand{Slugs: slugs, Prune: prune}); err != nil {
		return fmt.Errorf("sync catalog: %w", err)
	}

	_, err = fmt.Fprintf(out, "created=%d updated=%d unchanged=%d removed=%d\n",
		result.Created, result.Updated, result.Unchanged, result.Removed)
	return err
}
