package catalogcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/commands"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

const syncOperation = "catalog.sync"

// ErrCatalogUnavailable is returned when the handler has no catalog to write to.
var ErrCatalogUnavailable = errors.New("catalog command: catalog unavailable")

// Syncer is the catalog behaviour the handler needs.
type Syncer interface {
	Sync(ctx context.Context, posts []*interfaces.Post, opts catalog.SyncOptions) (catalog.SyncResult, error)
}

var _ command.Commander[SyncCatalogCommand] = (*SyncCatalogHandler)(nil)

// SyncCatalogHandler loads posts and writes their summaries to the catalog.
type SyncCatalogHandler struct {
	inner *commands.Handler[SyncCatalogCommand]
}

// HandlerConfig carries the collaborators of SyncCatalogHandler.
type HandlerConfig struct {
	Loader  interfaces.PostLoader
	Catalog Syncer
	Logger  interfaces.Logger
	// OnResult receives the counts of every successful sync.
	OnResult func(catalog.SyncResult)
}

// NewSyncCatalogHandler builds the handler.
func NewSyncCatalogHandler(cfg HandlerConfig, opts ...commands.HandlerOption[SyncCatalogCommand]) *SyncCatalogHandler {
	logger := logging.OrNoOp(cfg.Logger)

	exec := func(ctx context.Context, msg SyncCatalogCommand) error {
		if cfg.Catalog == nil || cfg.Loader == nil {
			return ErrCatalogUnavailable
		}

		posts, err := loadPosts(ctx, cfg.Loader, msg.Slugs, logger)
		if err != nil {
			return err
		}

		result, err := cfg.Catalog.Sync(ctx, posts, catalog.SyncOptions{
			Prune: msg.Prune && len(msg.Slugs) == 0,
		})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"created_count":   result.Created,
			"updated_count":   result.Updated,
			"unchanged_count": result.Unchanged,
			"removed_count":   result.Removed,
		}).Info("catalog.command.sync.completed")
		if cfg.OnResult != nil {
			cfg.OnResult(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncCatalogCommand]{
		commands.WithLogger[SyncCatalogCommand](logger),
		commands.WithOperation[SyncCatalogCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncCatalogCommand) map[string]any {
			fields := map[string]any{}
			if len(msg.Slugs) > 0 {
				fields["slugs"] = msg.Slugs
			}
			if msg.Prune {
				fields["prune"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncCatalogCommand](logger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncCatalogHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncCatalogCommand].
func (h *SyncCatalogHandler) Execute(ctx context.Context, msg SyncCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}

func loadPosts(ctx context.Context, loader interfaces.PostLoader, slugs []string, logger interfaces.Logger) ([]*interfaces.Post, error) {
	if len(slugs) == 0 {
		return loader.LoadAll(ctx), ctx.Err()
	}
	posts := make([]*interfaces.Post, 0, len(slugs))
	for _, slug := range slugs {
		post, err := loader.Load(ctx, slug)
		switch {
		case err == nil:
			posts = append(posts, post)
		case content.IsNotFound(err):
			logging.WithPostContext(logger, slug, "", "sync").Warn("catalog.command.sync.skipped")
		default:
			return nil, err
		}
	}
	return posts, nil
}
