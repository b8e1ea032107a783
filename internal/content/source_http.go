package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

const maxDocumentSize = 4 << 20

// HTTPSource fetches documents from <base>/<prefix>/<slug><ext>. Responses
// that look like an HTML page are treated as a routing fallback and rejected.
type HTTPSource struct {
	client     *http.Client
	baseURL    string
	prefix     string
	extensions []string
}

var _ interfaces.ContentSource = (*HTTPSource)(nil)

// HTTPSourceOption customises an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithPathPrefix changes the directory documents are served from (default "blogs").
func WithPathPrefix(prefix string) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.prefix = strings.Trim(prefix, "/")
	}
}

// WithExtensions sets the extensions tried for each slug.
func WithExtensions(extensions ...string) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.extensions = normalizeExtensions(extensions)
	}
}

// NewHTTPSource builds a source for baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		prefix:     "blogs",
		extensions: append([]string(nil), defaultExtensions...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch tries each extension in turn. A missing document or a fallback page
// moves on to the next extension; the last such error is returned when none
// succeed.
func (s *HTTPSource) Fetch(ctx context.Context, slug string) (*interfaces.Resource, error) {
	var lastErr error
	for _, ext := range s.extensions {
		res, err := s.fetch(ctx, slug, s.documentURL(slug+ext))
		if err == nil {
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrFallbackDocument) {
			return nil, err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("content: %s at %s: %w", slug, s.baseURL, fs.ErrNotExist)
	}
	return nil, lastErr
}

func (s *HTTPSource) fetch(ctx context.Context, slug, location string) (*interfaces.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("content: build request %s: %w", location, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("content: fetch %s: status %d: %w", location, resp.StatusCode, fs.ErrNotExist)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", location, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if IsHTMLFallback(contentType, data) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrFallbackDocument, location, contentType)
	}

	res := &interfaces.Resource{
		Slug:        slug,
		ContentType: contentType,
		Data:        data,
		Location:    location,
	}
	if modified, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		res.Modified = modified
	}
	return res, nil
}

func (s *HTTPSource) documentURL(file string) string {
	parts := []string{s.baseURL}
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	parts = append(parts, url.PathEscape(file))
	return strings.Join(parts, "/")
}

// IsHTMLFallback reports whether a response is an HTML page rather than a
// content document, either by its declared media type or by sniffing the body.
func IsHTMLFallback(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
			return true
		}
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}
