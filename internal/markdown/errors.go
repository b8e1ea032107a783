package markdown

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const malformedBodyCode = "POST_BODY_MALFORMED"

var (
	// ErrMalformedBody is reported when a body cannot be turned into a tree.
	ErrMalformedBody = errors.New("markdown: malformed body")
)

func malformed(reason string) error {
	return goerrors.Wrap(ErrMalformedBody, goerrors.CategoryBadInput, reason).
		WithTextCode(malformedBodyCode)
}

// IsMalformed reports whether err came from a body that could not be parsed.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedBody)
}
