package catalogcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-slug"
)

const syncCatalogMessageType = "showcase.catalog.sync"

// SyncCatalogCommand refreshes the post catalog from the content source.
type SyncCatalogCommand struct {
	// Slugs limits the sync to the listed posts. Empty syncs every known post.
	Slugs []string `json:"slugs,omitempty"`
	// Prune removes catalog entries for posts that no longer load. Ignored
	// when Slugs is set.
	Prune bool `json:"prune,omitempty"`
}

// Type implements command.Message.
func (SyncCatalogCommand) Type() string { return syncCatalogMessageType }

// Validate rejects malformed slugs before the handler runs.
func (cmd SyncCatalogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slugs, validation.Each(validation.By(func(value any) error {
			s, _ := value.(string)
			if !slug.IsValid(s) {
				return validation.NewError("showcase.catalog.sync.slug_invalid", "slug is not valid")
			}
			return nil
		}))),
	)
}
