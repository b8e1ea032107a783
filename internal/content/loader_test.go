package content

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

func post(title, date string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte("---\ntitle: " + title + "\npublished_date: " + date + "\n---\n\n## Heading\n\nBody text.\n")}
}

func newTestLoader(t *testing.T, files fstest.MapFS, slugs ...string) *Loader {
	t.Helper()
	registry, err := NewRegistry(slugs)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewLoader(NewFSSource(files, "blogs"), registry)
}

func TestLoaderLoadsKnownPost(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/first-post.mdoc": post("First", "2025-02-01"),
	}, "first-post")

	got, err := loader.Load(context.Background(), "first-post")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "First" || got.Slug != "first-post" {
		t.Fatalf("unexpected post %#v", got)
	}
	if got.ReadingTime != "1 min read" {
		t.Fatalf("unexpected reading time %q", got.ReadingTime)
	}
}

func TestLoaderUnknownSlugIsAbsent(t *testing.T) {
	fetches := 0
	source := sourceFunc(func(ctx context.Context, slug string) (*interfaces.Resource, error) {
		fetches++
		return nil, fs.ErrNotExist
	})
	loader := NewLoader(source, MustRegistry("first-post"))

	_, err := loader.Load(context.Background(), "missing-post")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if fetches != 0 {
		t.Fatalf("unknown slug must not be fetched, got %d fetches", fetches)
	}
}

func TestLoaderMissingTitleIsAbsent(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/untitled.mdoc": &fstest.MapFile{Data: []byte("---\nauthor: Someone\nexcerpt: ok\ntags: [a, b]\nfeatured: true\n---\nbody\n")},
	}, "untitled")

	_, err := loader.Load(context.Background(), "untitled")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound in chain, got %v", err)
	}
}

func TestLoaderMalformedFrontMatterIsAbsent(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/broken.mdoc": &fstest.MapFile{Data: []byte("---\ntitle: [oops\n---\nbody\n")},
	}, "broken")

	if _, err := loader.Load(context.Background(), "broken"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLoaderFallsBackToSecondExtension(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/legacy.md": post("Legacy", "2024-01-01"),
	}, "legacy")

	if _, err := loader.Load(context.Background(), "legacy"); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoaderPropagatesCancellation(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/first-post.mdoc": post("First", "2025-02-01"),
	}, "first-post")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, "first-post")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadAllIsolatesFailuresAndSortsNewestFirst(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{
		"blogs/older.mdoc":  post("Older", "2024-05-01"),
		"blogs/newer.mdoc":  post("Newer", "2025-03-10"),
		"blogs/broken.mdoc": &fstest.MapFile{Data: []byte("---\ntitle: \"\"\n---\nbody\n")},
	}, "older", "broken", "absent", "newer")

	posts := loader.LoadAll(context.Background())
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Fatalf("unexpected order: %s, %s", posts[0].Slug, posts[1].Slug)
	}
}

func TestHTTPSourceRejectsHTMLFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body><div id=\"root\"></div></body></html>"))
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, WithExtensions(".md"))
	_, err := source.Fetch(context.Background(), "first-post")
	if !errors.Is(err, ErrFallbackDocument) {
		t.Fatalf("expected ErrFallbackDocument, got %v", err)
	}

	loader := NewLoader(source, MustRegistry("first-post"))
	if _, err := loader.Load(context.Background(), "first-post"); !IsNotFound(err) {
		t.Fatalf("expected fallback page to be absent, got %v", err)
	}
}

func TestHTTPSourceSniffsUnlabelledHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("\n  <html><head></head></html>"))
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL).Fetch(context.Background(), "first-post")
	if !errors.Is(err, ErrFallbackDocument) {
		t.Fatalf("expected ErrFallbackDocument, got %v", err)
	}
}

func TestHTTPSourceFetchesMarkdown(t *testing.T) {
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		if !strings.HasSuffix(r.URL.Path, ".md") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/markdown")
		_, _ = w.Write([]byte("---\ntitle: Remote\n---\nbody\n"))
	}))
	defer server.Close()

	loader := NewLoader(NewHTTPSource(server.URL+"/"), MustRegistry("remote-post"))
	got, err := loader.Load(context.Background(), "remote-post")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Title != "Remote" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	want := []string{"/blogs/remote-post.mdoc", "/blogs/remote-post.md"}
	if len(requested) != 2 || requested[0] != want[0] || requested[1] != want[1] {
		t.Fatalf("unexpected request sequence %v", requested)
	}
}

func TestHTTPSourceNonSuccessIsMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewHTTPSource(server.URL).Fetch(context.Background(), "first-post")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestNewRegistryRejectsInvalidSlug(t *testing.T) {
	if _, err := NewRegistry([]string{"ok-slug", "Not A Slug"}); !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
	r := MustRegistry("a-post", "a-post", "b-post")
	if got := r.Slugs(); len(got) != 2 {
		t.Fatalf("expected duplicates to collapse, got %v", got)
	}
}

type sourceFunc func(ctx context.Context, slug string) (*interfaces.Resource, error)

func (f sourceFunc) Fetch(ctx context.Context, slug string) (*interfaces.Resource, error) {
	return f(ctx, slug)
}

func TestIsNotFoundRequiresPostSentinel(t *testing.T) {
	other := goerrors.New("catalog entry missing", goerrors.CategoryNotFound)
	if IsNotFound(other) {
		t.Fatalf("expected unrelated not found error to be ignored")
	}
	if !IsNotFound(notFound("missing-post")) {
		t.Fatalf("expected loader absent signal to match")
	}
}
