package catalog_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/identity"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := catalog.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, catalog.Migrate(context.Background(), db))
	return db
}

func testPost(slug, title, date string, tags ...string) *interfaces.Post {
	sum := sha256.Sum256([]byte(slug + title + date))
	published, _ := time.Parse(time.DateOnly, date)
	return &interfaces.Post{
		Slug:          slug,
		Title:         title,
		Author:        "Zeeshan Ahmad",
		PublishedDate: date,
		PublishedAt:   published,
		Tags:          tags,
		ReadingTime:   "3 min read",
		Checksum:      sum[:],
	}
}

func TestSyncCreatesUpdatesAndSkips(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := catalog.NewService(catalog.NewBunEntryRepository(newTestDB(t)), catalog.WithNow(func() time.Time { return now }))

	posts := []*interfaces.Post{
		testPost("healthcare-platform-architecture", "Healthcare Platform", "2025-03-10", "architecture"),
		testPost("password-management-guide", "Password Management", "2024-11-02", "security"),
	}

	result, err := svc.Sync(ctx, posts, catalog.SyncOptions{})
	require.NoError(t, err)
	require.Equal(t, catalog.SyncResult{Created: 2}, result)

	result, err = svc.Sync(ctx, posts, catalog.SyncOptions{})
	require.NoError(t, err)
	require.Equal(t, catalog.SyncResult{Unchanged: 2}, result)

	changed := testPost("password-management-guide", "Password Management, Revisited", "2024-11-02", "security")
	result, err = svc.Sync(ctx, []*interfaces.Post{posts[0], changed}, catalog.SyncOptions{})
	require.NoError(t, err)
	require.Equal(t, catalog.SyncResult{Updated: 1, Unchanged: 1}, result)

	entry, err := svc.Get(ctx, "password-management-guide")
	require.NoError(t, err)
	require.Equal(t, "Password Management, Revisited", entry.Title)
	require.Equal(t, identity.PostUUID("password-management-guide"), entry.ID)
	require.Equal(t, []string{"security"}, entry.Tags)
}

func TestSyncPrunesMissingPosts(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(catalog.NewBunEntryRepository(newTestDB(t)))

	_, err := svc.Sync(ctx, []*interfaces.Post{
		testPost("first-post", "First", "2025-01-01"),
		testPost("second-post", "Second", "2025-02-01"),
	}, catalog.SyncOptions{})
	require.NoError(t, err)

	result, err := svc.Sync(ctx, []*interfaces.Post{testPost("second-post", "Second", "2025-02-01")}, catalog.SyncOptions{Prune: true})
	require.NoError(t, err)
	require.Equal(t, catalog.SyncResult{Unchanged: 1, Removed: 1}, result)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "second-post", entries[0].Slug)
}

func TestListOrdersNewestFirstAndFiltersByTag(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(catalog.NewBunEntryRepository(newTestDB(t)))

	_, err := svc.Sync(ctx, []*interfaces.Post{
		testPost("older-post", "Older", "2024-01-01", "go"),
		testPost("newer-post", "Newer", "2025-01-01", "python"),
		testPost("middle-post", "Middle", "2024-06-01", "go", "python"),
	}, catalog.SyncOptions{})
	require.NoError(t, err)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []string{"newer-post", "middle-post", "older-post"},
		[]string{entries[0].Slug, entries[1].Slug, entries[2].Slug})

	tagged, err := svc.ListByTag(ctx, "go")
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	require.Equal(t, "middle-post", tagged[0].Slug)
}

func TestGetMissingEntry(t *testing.T) {
	svc := catalog.NewService(catalog.NewBunEntryRepository(newTestDB(t)))

	_, err := svc.Get(context.Background(), "missing-post")
	require.ErrorIs(t, err, catalog.ErrEntryNotFound)
}

func TestCachedRepositoryServesReads(t *testing.T) {
	ctx := context.Background()
	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	require.NoError(t, err)

	repo := catalog.NewBunEntryRepositoryWithCache(newTestDB(t), cacheSvc, repocache.NewDefaultKeySerializer())
	svc := catalog.NewService(repo)

	_, err = repo.Create(ctx, catalog.EntryFromPost(testPost("cached-post", "Cached", "2025-05-05")))
	require.NoError(t, err)

	for range 2 {
		entry, err := svc.Get(ctx, "cached-post")
		require.NoError(t, err)
		require.Equal(t, "Cached", entry.Title)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := catalog.Open("mysql", "dsn")
	require.ErrorIs(t, err, catalog.ErrDriverUnsupported)
}
