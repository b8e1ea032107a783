package interfaces

import (
	"context"
	"time"
)

// Post is a single blog article assembled from a fetched content document.
// Posts are built once per load and never mutated afterwards.
type Post struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	PublishedDate string    `json:"published_date"`
	PublishedAt   time.Time `json:"-"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Tags          []string  `json:"tags"`
	Featured      bool      `json:"featured"`
	Body          string    `json:"-"`
	ReadingTime   string    `json:"reading_time"`
	// Checksum is the SHA-256 digest of the raw resource so catalog syncs can
	// skip unchanged documents.
	Checksum []byte `json:"-"`
}

// TOCEntry is one level-2 or level-3 heading in document order.
type TOCEntry struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Resource is the raw payload returned by a ContentSource.
type Resource struct {
	Slug        string
	ContentType string
	Data        []byte
	Location    string
	Modified    time.Time
}

// ContentSource retrieves raw content documents by slug. Implementations
// report a missing document through an error matching fs.ErrNotExist.
type ContentSource interface {
	Fetch(ctx context.Context, slug string) (*Resource, error)
}

// PostLoader resolves posts for page controllers.
type PostLoader interface {
	Load(ctx context.Context, slug string) (*Post, error)
	LoadAll(ctx context.Context) []*Post
}
