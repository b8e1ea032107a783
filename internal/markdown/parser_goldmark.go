package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

const markdocTableExtension = "markdoc-table"

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":                 extension.GFM,
	"table":               extension.Table,
	"tables":              extension.Table,
	"strikethrough":       extension.Strikethrough,
	"linkify":             extension.Linkify,
	"autolink":            extension.Linkify,
	"tasklist":            extension.TaskList,
	"definition":          extension.DefinitionList,
	"footnote":            extension.Footnote,
	markdocTableExtension: MarkdocTable,
	"markdoc":             MarkdocTable,
}

// DefaultExtensions is used when ParseOptions names none.
var DefaultExtensions = []string{"gfm", "linkify", "tasklist", markdocTableExtension}

// goldmarkParser wraps a configured goldmark instance. goldmark parsers keep
// no per-call state so one instance serves concurrent transforms.
type goldmarkParser struct {
	md      goldmark.Markdown
	markdoc bool
}

func newGoldmarkParser(opts interfaces.ParseOptions) *goldmarkParser {
	names := opts.Extensions
	if len(names) == 0 {
		names = DefaultExtensions
	}
	exts, markdoc := collectExtensions(names)

	var engineOptions []goldmark.Option
	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return &goldmarkParser{
		md:      goldmark.New(engineOptions...),
		markdoc: markdoc,
	}
}

func (p *goldmarkParser) parse(source []byte) ast.Node {
	return p.md.Parser().Parse(text.NewReader(source))
}

func collectExtensions(names []string) ([]goldmark.Extender, bool) {
	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}
	markdoc := false

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}

		if ext == MarkdocTable {
			markdoc = true
		}
		extenders = append(extenders, ext)
		seen[ext] = struct{}{}
	}

	return extenders, markdoc
}
