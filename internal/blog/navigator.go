package blog

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned to a navigation that was replaced by a newer one
// before it finished.
var ErrSuperseded = errors.New("blog: navigation superseded")

// Navigator tracks the page currently being viewed. Starting a navigation
// cancels the one in flight, and a result that arrives after it was replaced
// is discarded.
type Navigator struct {
	pages Pages

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current *Page
}

// NewNavigator builds a navigator over pages.
func NewNavigator(pages Pages) *Navigator {
	return &Navigator{pages: pages}
}

// Navigate loads slug and makes it the current page.
func (n *Navigator) Navigate(ctx context.Context, slug string) (*Page, error) {
	ctx, cancel, seq := n.begin(ctx)
	defer cancel()

	page, err := n.pages.Page(ctx, slug)
	return n.complete(seq, page, err)
}

// Load navigates to slug in the background and hands the result to done,
// which receives ErrSuperseded when a later navigation replaced this one. The
// navigation is registered before Load returns, so calls supersede each other
// in the order they were made.
func (n *Navigator) Load(ctx context.Context, slug string, done func(*Page, error)) {
	ctx, cancel, seq := n.begin(ctx)
	go func() {
		defer cancel()
		page, err := n.pages.Page(ctx, slug)
		page, err = n.complete(seq, page, err)
		if done != nil {
			done(page, err)
		}
	}()
}

func (n *Navigator) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
	}
	n.seq++
	n.cancel = cancel
	return ctx, cancel, n.seq
}

func (n *Navigator) complete(seq uint64, page *Page, err error) (*Page, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if seq != n.seq {
		return nil, ErrSuperseded
	}
	n.cancel = nil
	if err != nil {
		return nil, err
	}
	n.current = page
	return page, nil
}

// Current returns the last page that finished loading, or nil.
func (n *Navigator) Current() *Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
