package content

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const postNotFoundCode = "POST_NOT_FOUND"

var (
	// ErrPostNotFound is the single "absent" signal returned by the loader.
	// Unknown slugs, missing resources, fallback pages and malformed metadata
	// all collapse into it.
	ErrPostNotFound = errors.New("content: post not found")

	ErrUnknownSlug      = errors.New("content: slug is not a known post")
	ErrInvalidSlug      = errors.New("content: slug is invalid")
	ErrFallbackDocument = errors.New("content: resource is an html fallback page")
	ErrTitleRequired    = errors.New("content: title is required")
	ErrMetadataInvalid  = errors.New("content: frontmatter does not match the post schema")
)

func notFound(slug string) error {
	return goerrors.Wrap(ErrPostNotFound, goerrors.CategoryNotFound, fmt.Sprintf("post %q not found", slug)).
		WithTextCode(postNotFoundCode)
}

// IsNotFound reports whether err is the loader's absent signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}
