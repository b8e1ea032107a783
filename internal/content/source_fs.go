package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

var defaultExtensions = []string{".mdoc", ".md"}

// FSSource reads documents named <slug><ext> from a filesystem, trying each
// configured extension in order.
type FSSource struct {
	fsys       fs.FS
	dir        string
	extensions []string
}

var _ interfaces.ContentSource = (*FSSource)(nil)

// NewFSSource builds a source rooted at dir within fsys. An empty extension
// list defaults to .mdoc then .md.
func NewFSSource(fsys fs.FS, dir string, extensions ...string) *FSSource {
	dir = strings.Trim(path.Clean("/"+strings.TrimSpace(dir)), "/")
	if dir == "" {
		dir = "."
	}
	return &FSSource{
		fsys:       fsys,
		dir:        dir,
		extensions: normalizeExtensions(extensions),
	}
}

func (s *FSSource) Fetch(ctx context.Context, slug string) (*interfaces.Resource, error) {
	for _, ext := range s.extensions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := path.Join(s.dir, slug+ext)
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", name, err)
		}
		res := &interfaces.Resource{
			Slug:        slug,
			ContentType: contentTypeFor(ext),
			Data:        data,
			Location:    name,
		}
		if info, err := fs.Stat(s.fsys, name); err == nil {
			res.Modified = info.ModTime()
		}
		return res, nil
	}
	return nil, fmt.Errorf("content: %s in %s: %w", slug, s.dir, fs.ErrNotExist)
}

func normalizeExtensions(extensions []string) []string {
	var out []string
	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return append([]string(nil), defaultExtensions...)
	}
	return out
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".md", ".markdown":
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
