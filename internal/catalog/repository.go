package catalog

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewEntryRepository creates the go-repository-bun repository for entries,
// keyed by slug.
func NewEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord:          func() *Entry { return &Entry{} },
		GetID:              func(entry *Entry) uuid.UUID { return entry.ID },
		SetID:              func(entry *Entry, id uuid.UUID) { entry.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(entry *Entry) string { return entry.Slug },
	})
}

// BunEntryRepository reads and writes catalog entries with optional caching.
type BunEntryRepository struct {
	repo repository.Repository[*Entry]
}

// NewBunEntryRepository creates an entry repository without caching.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache creates an entry repository whose reads go
// through go-repository-cache.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEntryRepository {
	base := NewEntryRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunEntryRepository{repo: base}
}

func (r *BunEntryRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {
	return r.repo.Create(ctx, entry)
}

func (r *BunEntryRepository) Update(ctx context.Context, entry *Entry) (*Entry, error) {
	record, err := r.repo.Update(ctx, entry)
	if err != nil {
		return nil, mapRepositoryError(err, entry.Slug)
	}
	return record, nil
}

func (r *BunEntryRepository) GetBySlug(ctx context.Context, slug string) (*Entry, error) {
	record, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, slug)
	}
	return record, nil
}

// List returns entries newest first.
func (r *BunEntryRepository) List(ctx context.Context) ([]*Entry, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.published_date DESC, ?TableAlias.slug ASC")
	}))
	return records, err
}

// ListByTag returns entries carrying tag, newest first.
func (r *BunEntryRepository) ListByTag(ctx context.Context, tag string) ([]*Entry, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Entry, 0, len(records))
	for _, record := range records {
		for _, t := range record.Tags {
			if t == tag {
				out = append(out, record)
				break
			}
		}
	}
	return out, nil
}

func (r *BunEntryRepository) Delete(ctx context.Context, entry *Entry) error {
	return r.repo.Delete(ctx, entry)
}
