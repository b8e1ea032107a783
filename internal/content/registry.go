package content

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slug"
)

// Registry is the fixed list of slugs the site publishes. Slugs outside the
// registry are never fetched.
type Registry struct {
	slugs []string
	index map[string]struct{}
}

// NewRegistry validates slugs and builds a registry preserving their order.
// Duplicates are ignored.
func NewRegistry(slugs []string) (*Registry, error) {
	r := &Registry{index: make(map[string]struct{}, len(slugs))}
	for _, raw := range slugs {
		value := strings.TrimSpace(raw)
		if !slug.IsValid(value) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSlug, raw)
		}
		if _, ok := r.index[value]; ok {
			continue
		}
		r.index[value] = struct{}{}
		r.slugs = append(r.slugs, value)
	}
	return r, nil
}

// MustRegistry is NewRegistry for static slug lists.
func MustRegistry(slugs ...string) *Registry {
	r, err := NewRegistry(slugs)
	if err != nil {
		panic(err)
	}
	return r
}

// Known reports whether slug is published.
func (r *Registry) Known(value string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[value]
	return ok
}

// Slugs returns the registered slugs in registration order.
func (r *Registry) Slugs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.slugs...)
}
