package catalog

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// EntryRepository is the storage contract the catalog service depends on.
type EntryRepository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
	GetBySlug(ctx context.Context, slug string) (*Entry, error)
	List(ctx context.Context) ([]*Entry, error)
	ListByTag(ctx context.Context, tag string) ([]*Entry, error)
	Delete(ctx context.Context, entry *Entry) error
}

// Service keeps the catalog in step with the loaded posts.
type Service struct {
	repo   EntryRepository
	now    func() time.Time
	logger interfaces.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithNow overrides the clock used for timestamps.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// NewService builds a catalog service over repo.
func NewService(repo EntryRepository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the entry for slug.
func (s *Service) Get(ctx context.Context, slug string) (*Entry, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all entries newest first.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.List(ctx)
}

// ListByTag returns the entries carrying tag.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]*Entry, error) {
	return s.repo.ListByTag(ctx, tag)
}

// Sync upserts an entry per post. Entries whose checksum and fields already
// match are left alone.
func (s *Service) Sync(ctx context.Context, posts []*interfaces.Post, opts SyncOptions) (SyncResult, error) {
	var result SyncResult
	seen := make(map[string]struct{}, len(posts))

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if post == nil {
			continue
		}
		seen[post.Slug] = struct{}{}
		logger := logging.WithPostContext(s.logger, post.Slug, "", "sync")

		next := EntryFromPost(post)
		existing, err := s.repo.GetBySlug(ctx, post.Slug)
		switch {
		case errors.Is(err, ErrEntryNotFound):
			now := s.now()
			next.CreatedAt, next.UpdatedAt = now, now
			if _, err := s.repo.Create(ctx, next); err != nil {
				return result, err
			}
			result.Created++
			logger.Debug("catalog.sync.created")
		case err != nil:
			return result, err
		case sameEntry(existing, next):
			result.Unchanged++
		default:
			next.ID = existing.ID
			next.CreatedAt = existing.CreatedAt
			next.UpdatedAt = s.now()
			if _, err := s.repo.Update(ctx, next); err != nil {
				return result, err
			}
			result.Updated++
			logger.Debug("catalog.sync.updated")
		}
	}

	if opts.Prune {
		entries, err := s.repo.List(ctx)
		if err != nil {
			return result, err
		}
		for _, entry := range entries {
			if _, ok := seen[entry.Slug]; ok {
				continue
			}
			if err := s.repo.Delete(ctx, entry); err != nil {
				return result, err
			}
			result.Removed++
		}
	}

	s.logger.Info("catalog.sync.completed",
		"created", result.Created,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"removed", result.Removed,
	)
	return result, nil
}

func sameEntry(a, b *Entry) bool {
	return a.Checksum == b.Checksum &&
		a.Title == b.Title &&
		a.Excerpt == b.Excerpt &&
		a.Author == b.Author &&
		a.PublishedDate == b.PublishedDate &&
		a.FeaturedImage == b.FeaturedImage &&
		a.Featured == b.Featured &&
		a.ReadingTime == b.ReadingTime &&
		slices.Equal(a.Tags, b.Tags)
}
