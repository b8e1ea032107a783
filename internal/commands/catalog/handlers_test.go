package catalogcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

type stubLoader struct {
	posts   map[string]*interfaces.Post
	loadErr error
}

func (s *stubLoader) Load(_ context.Context, slug string) (*interfaces.Post, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	post, ok := s.posts[slug]
	if !ok {
		return nil, content.ErrPostNotFound
	}
	return post, nil
}

func (s *stubLoader) LoadAll(context.Context) []*interfaces.Post {
	out := make([]*interfaces.Post, 0, len(s.posts))
	for _, post := range s.posts {
		out = append(out, post)
	}
	return out
}

type syncCall struct {
	slugs []string
	opts  catalog.SyncOptions
}

type stubSyncer struct {
	calls  []syncCall
	result catalog.SyncResult
	err    error
}

func (s *stubSyncer) Sync(_ context.Context, posts []*interfaces.Post, opts catalog.SyncOptions) (catalog.SyncResult, error) {
	call := syncCall{opts: opts}
	for _, post := range posts {
		call.slugs = append(call.slugs, post.Slug)
	}
	s.calls = append(s.calls, call)
	return s.result, s.err
}

func newLoader() *stubLoader {
	return &stubLoader{posts: map[string]*interfaces.Post{
		"first-post":  {Slug: "first-post", Title: "First"},
		"second-post": {Slug: "second-post", Title: "Second"},
	}}
}

func TestSyncCatalogHandlerSyncsEveryPost(t *testing.T) {
	syncer := &stubSyncer{result: catalog.SyncResult{Created: 2}}
	var reported catalog.SyncResult
	h := NewSyncCatalogHandler(HandlerConfig{
		Loader:   newLoader(),
		Catalog:  syncer,
		OnResult: func(r catalog.SyncResult) { reported = r },
	})

	if err := h.Execute(context.Background(), SyncCatalogCommand{Prune: true}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(syncer.calls) != 1 || len(syncer.calls[0].slugs) != 2 {
		t.Fatalf("expected one sync of two posts, got %+v", syncer.calls)
	}
	if !syncer.calls[0].opts.Prune {
		t.Fatalf("expected prune to be forwarded")
	}
	if reported.Created != 2 {
		t.Fatalf("expected result to be reported, got %+v", reported)
	}
}

func TestSyncCatalogHandlerSelectedSlugsSkipAbsentAndNeverPrune(t *testing.T) {
	syncer := &stubSyncer{}
	h := NewSyncCatalogHandler(HandlerConfig{Loader: newLoader(), Catalog: syncer})

	err := h.Execute(context.Background(), SyncCatalogCommand{Slugs: []string{"second-post", "missing-post"}, Prune: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(syncer.calls) != 1 {
		t.Fatalf("expected one sync call, got %d", len(syncer.calls))
	}
	call := syncer.calls[0]
	if len(call.slugs) != 1 || call.slugs[0] != "second-post" {
		t.Fatalf("unexpected synced slugs %v", call.slugs)
	}
	if call.opts.Prune {
		t.Fatalf("prune must be ignored for a partial sync")
	}
}

func TestSyncCatalogCommandRejectsInvalidSlug(t *testing.T) {
	syncer := &stubSyncer{}
	h := NewSyncCatalogHandler(HandlerConfig{Loader: newLoader(), Catalog: syncer})

	err := h.Execute(context.Background(), SyncCatalogCommand{Slugs: []string{"Not A Slug!"}})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(syncer.calls) != 0 {
		t.Fatalf("sync must not run for invalid input")
	}
}

func TestSyncCatalogHandlerWrapsFailures(t *testing.T) {
	syncer := &stubSyncer{err: errors.New("disk full")}
	h := NewSyncCatalogHandler(HandlerConfig{Loader: newLoader(), Catalog: syncer})

	err := h.Execute(context.Background(), SyncCatalogCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestSyncCatalogHandlerRequiresCatalog(t *testing.T) {
	h := NewSyncCatalogHandler(HandlerConfig{Loader: newLoader()})

	err := h.Execute(context.Background(), SyncCatalogCommand{})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestSyncCatalogHandlerPropagatesLoadErrors(t *testing.T) {
	loader := newLoader()
	loader.loadErr = errors.New("network down")
	h := NewSyncCatalogHandler(HandlerConfig{Loader: loader, Catalog: &stubSyncer{}})

	err := h.Execute(context.Background(), SyncCatalogCommand{Slugs: []string{"first-post"}})
	if err == nil {
		t.Fatalf("expected load error")
	}
}
