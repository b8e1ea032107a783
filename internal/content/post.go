package content

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

const wordsPerMinute = 200

// BuildPost parses source into a Post for slug. It fails when the
// frontmatter cannot be parsed, does not match the post schema, or has no
// title.
func BuildPost(slug string, source []byte) (*interfaces.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	published := stringField(meta, "published_date")
	text := string(body)
	sum := sha256.Sum256(source)

	post := &interfaces.Post{
		Slug:          slug,
		Title:         stringField(meta, "title"),
		Excerpt:       stringField(meta, "excerpt"),
		Author:        stringField(meta, "author"),
		PublishedDate: published,
		PublishedAt:   ParseDate(published),
		FeaturedImage: stringField(meta, "featured_image"),
		Tags:          stringsField(meta, "tags"),
		Featured:      boolField(meta, "featured"),
		Body:          text,
		ReadingTime:   ReadingTime(text),
		Checksum:      sum[:],
	}
	if err := ValidatePost(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ValidatePost enforces the invariants a post must hold before it reaches a
// renderer.
func ValidatePost(post *interfaces.Post) error {
	if post == nil {
		return ErrTitleRequired
	}
	err := validation.ValidateStruct(post,
		validation.Field(&post.Title, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return ErrTitleRequired
			}
			return nil
		})),
		validation.Field(&post.Slug, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("content: invalid post %q: %w", post.Slug, err)
	}
	return nil
}

// ReadingTime estimates minutes at 200 words per minute, rounding up.
func ReadingTime(body string) string {
	words := len(strings.Fields(body))
	if words == 0 {
		words = 1
	}
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	return fmt.Sprintf("%d min read", minutes)
}

// ParseDate reads an ISO date (optionally with a time component). Unparseable
// values yield the zero time.
func ParseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	if len(value) >= len(time.DateOnly) {
		if t, err := time.Parse(time.DateOnly, value[:len(time.DateOnly)]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders an ISO date the way the listing shows it, e.g.
// "January 15, 2025". Unparseable input is returned unchanged.
func FormatDate(value string) string {
	t := ParseDate(value)
	if t.IsZero() {
		return value
	}
	return t.Format("January 2, 2006")
}
