package blog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

type blockingPages struct {
	started chan string
}

func (p *blockingPages) Page(ctx context.Context, slug string) (*Page, error) {
	p.started <- slug
	if slug == "slow-post" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &Page{Post: &interfaces.Post{Slug: slug, Title: slug}}, nil
}

func TestNavigatorCancelsInFlightLoad(t *testing.T) {
	pages := &blockingPages{started: make(chan string, 2)}
	nav := NewNavigator(pages)

	slowErr := make(chan error, 1)
	go func() {
		_, err := nav.Navigate(context.Background(), "slow-post")
		slowErr <- err
	}()
	if got := <-pages.started; got != "slow-post" {
		t.Fatalf("expected slow-post to start, got %s", got)
	}

	page, err := nav.Navigate(context.Background(), "fast-post")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if page.Post.Slug != "fast-post" {
		t.Fatalf("unexpected page %s", page.Post.Slug)
	}

	select {
	case err := <-slowErr:
		if !errors.Is(err, ErrSuperseded) {
			t.Fatalf("expected ErrSuperseded, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("slow navigation was not cancelled")
	}

	if current := nav.Current(); current == nil || current.Post.Slug != "fast-post" {
		t.Fatalf("stale result replaced the current page: %+v", current)
	}
}

func TestNavigatorKeepsPreviousPageOnError(t *testing.T) {
	pages := &blockingPages{started: make(chan string, 2)}
	nav := NewNavigator(pages)

	if _, err := nav.Navigate(context.Background(), "first-post"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	<-pages.started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := nav.Navigate(ctx, "slow-post"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	<-pages.started

	if current := nav.Current(); current == nil || current.Post.Slug != "first-post" {
		t.Fatalf("expected first-post to remain current, got %+v", current)
	}
}

func TestNavigatorLoadOrdersByCall(t *testing.T) {
	pages := &blockingPages{started: make(chan string, 2)}
	nav := NewNavigator(pages)

	type result struct {
		page *Page
		err  error
	}
	slow := make(chan result, 1)
	fast := make(chan result, 1)

	nav.Load(context.Background(), "slow-post", func(p *Page, err error) { slow <- result{p, err} })
	nav.Load(context.Background(), "fast-post", func(p *Page, err error) { fast <- result{p, err} })

	for _, ch := range []struct {
		name string
		c    chan result
	}{{"slow", slow}, {"fast", fast}} {
		select {
		case r := <-ch.c:
			if ch.name == "slow" && !errors.Is(r.err, ErrSuperseded) {
				t.Fatalf("expected slow load to be superseded, got %v", r.err)
			}
			if ch.name == "fast" && (r.err != nil || r.page.Post.Slug != "fast-post") {
				t.Fatalf("unexpected fast result %+v %v", r.page, r.err)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s load did not finish", ch.name)
		}
	}

	if current := nav.Current(); current == nil || current.Post.Slug != "fast-post" {
		t.Fatalf("unexpected current page %+v", current)
	}
}
