package content

import (
	"context"
	"errors"
	"io/fs"
	"sort"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Loader resolves known slugs into validated posts. Every failure other than
// context cancellation is reported as ErrPostNotFound so callers can redirect
// to the listing; the cause is logged instead of returned.
type Loader struct {
	source   interfaces.ContentSource
	registry *Registry
	logger   interfaces.Logger
}

var _ interfaces.PostLoader = (*Loader)(nil)

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for rejected documents.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logging.OrNoOp(logger)
	}
}

// NewLoader builds a loader over source restricted to registry.
func NewLoader(source interfaces.ContentSource, registry *Registry, opts ...LoaderOption) *Loader {
	l := &Loader{
		source:   source,
		registry: registry,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and parses the post for slug. Each call fetches again.
func (l *Loader) Load(ctx context.Context, slug string) (*interfaces.Post, error) {
	logger := logging.WithPostContext(l.logger, slug, "", "load")

	if !l.registry.Known(slug) {
		logger.Debug("content.load.unknown_slug", "error", ErrUnknownSlug)
		return nil, notFound(slug)
	}

	res, err := l.source.Fetch(ctx, slug)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("content.load.missing", "error", err)
		} else {
			logger.Warn("content.load.fetch_failed", "error", err)
		}
		return nil, notFound(slug)
	}

	post, err := BuildPost(slug, res.Data)
	if err != nil {
		logging.WithPostContext(logger, "", res.Location, "").Warn("content.load.rejected", "error", err)
		return nil, notFound(slug)
	}

	logger.Debug("content.load.completed", "reading_time", post.ReadingTime)
	return post, nil
}

// LoadAll loads every registered post independently. Posts that fail to load
// are skipped. The result is ordered newest first, then by slug.
func (l *Loader) LoadAll(ctx context.Context) []*interfaces.Post {
	slugs := l.registry.Slugs()
	posts := make([]*interfaces.Post, 0, len(slugs))
	for _, slug := range slugs {
		if ctx.Err() != nil {
			break
		}
		post, err := l.Load(ctx, slug)
		if err != nil {
			continue
		}
		posts = append(posts, post)
	}
	SortNewestFirst(posts)
	return posts
}

// SortNewestFirst orders posts by published date descending. Undated posts
// sort last.
func SortNewestFirst(posts []*interfaces.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return posts[i].Slug < posts[j].Slug
	})
}
