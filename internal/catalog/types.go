// Package catalog keeps a SQL index of post summaries so listings and
// syncs do not need to fetch every document.
package catalog

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/identity"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Entry is the stored summary of one post.
type Entry struct {
	bun.BaseModel `bun:"table:post_entries,alias:pe"`

	ID            uuid.UUID  `bun:",pk,type:uuid"                  json:"id"`
	Slug          string     `bun:"slug,notnull,unique"            json:"slug"`
	Title         string     `bun:"title,notnull"                  json:"title"`
	Excerpt       string     `bun:"excerpt"                        json:"excerpt"`
	Author        string     `bun:"author"                         json:"author"`
	PublishedDate string     `bun:"published_date"                 json:"published_date"`
	PublishedAt   *time.Time `bun:"published_at,nullzero"          json:"published_at,omitempty"`
	FeaturedImage string     `bun:"featured_image"                 json:"featured_image,omitempty"`
	Tags          []string   `bun:"tags,type:jsonb"                json:"tags"`
	Featured      bool       `bun:"featured,notnull,default:false" json:"featured"`
	ReadingTime   string     `bun:"reading_time"                   json:"reading_time"`
	Checksum      string     `bun:"checksum,notnull"               json:"checksum"`
	CreatedAt     time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// EntryFromPost maps a loaded post onto a catalog entry.
func EntryFromPost(post *interfaces.Post) *Entry {
	entry := &Entry{
		ID:            identity.PostUUID(post.Slug),
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		Author:        post.Author,
		PublishedDate: post.PublishedDate,
		FeaturedImage: post.FeaturedImage,
		Tags:          append([]string{}, post.Tags...),
		Featured:      post.Featured,
		ReadingTime:   post.ReadingTime,
		Checksum:      hex.EncodeToString(post.Checksum),
	}
	if !post.PublishedAt.IsZero() {
		published := post.PublishedAt.UTC()
		entry.PublishedAt = &published
	}
	return entry
}

// SyncResult counts what a sync changed.
type SyncResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
}

// SyncOptions tunes a sync run.
type SyncOptions struct {
	// Prune removes entries whose slug is not among the synced posts.
	Prune bool
}
