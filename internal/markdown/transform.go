package markdown

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Transformer converts post bodies into render trees.
type Transformer struct {
	parser    *goldmarkParser
	hardWraps bool
	unsafe    bool
	logger    interfaces.Logger
}

// TransformerOption customises a Transformer.
type TransformerOption func(*Transformer)

// WithLogger sets the logger used to report rejected bodies.
func WithLogger(logger interfaces.Logger) TransformerOption {
	return func(t *Transformer) {
		t.logger = logging.OrNoOp(logger)
	}
}

// NewTransformer builds a transformer for the given parse options. An empty
// extension list selects DefaultExtensions.
func NewTransformer(opts interfaces.ParseOptions, options ...TransformerOption) *Transformer {
	t := &Transformer{
		parser:    newGoldmarkParser(opts),
		hardWraps: opts.HardWraps,
		unsafe:    opts.Unsafe,
		logger:    logging.NoOp(),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Markdoc reports whether {% table %} scopes are recognised.
func (t *Transformer) Markdoc() bool {
	return t.parser.markdoc
}

// Transform parses body and returns its render tree. Heading ids are taken
// from toc, which should be the index of the same body. Level one headings
// are dropped since the page title is rendered separately.
func (t *Transformer) Transform(body []byte, toc TOC) (*Node, error) {
	if !utf8.Valid(body) {
		t.logger.Warn("markdown.transform.rejected", "reason", "invalid_utf8")
		return nil, malformed("body is not valid UTF-8")
	}

	source := body
	if t.parser.markdoc {
		source = separateTableRows(body)
	}

	conv := &converter{
		source:    source,
		anchors:   newAnchors(toc),
		hardWraps: t.hardWraps,
		unsafe:    t.unsafe,
	}
	root := &Node{
		Kind:     KindDocument,
		Children: conv.children(t.parser.parse(source)),
	}
	if conv.err != nil {
		t.logger.Warn("markdown.transform.rejected", "error", conv.err)
		return nil, conv.err
	}
	return root, nil
}

type converter struct {
	source    []byte
	anchors   *anchors
	hardWraps bool
	unsafe    bool
	err       error
}

func (c *converter) children(parent ast.Node) []*Node {
	var out []*Node
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		out = appendMerged(out, c.convert(child)...)
	}
	return out
}

// appendMerged appends nodes, folding adjacent text nodes together.
func appendMerged(out []*Node, nodes ...*Node) []*Node {
	for _, n := range nodes {
		if n.Kind == KindText && len(out) > 0 && out[len(out)-1].Kind == KindText {
			out[len(out)-1].Content += n.Content
			continue
		}
		out = append(out, n)
	}
	return out
}

func (c *converter) convert(n ast.Node) []*Node {
	switch node := n.(type) {
	case *ast.Heading:
		return c.heading(node)
	case *ast.Paragraph:
		return one(&Node{Kind: KindParagraph, Children: c.children(node)})
	case *ast.TextBlock:
		return c.children(node)
	case *ast.List:
		list := &Node{Kind: KindList, Ordered: node.IsOrdered(), Children: c.children(node)}
		if node.IsOrdered() && node.Start != 1 {
			list.Start = node.Start
		}
		return one(list)
	case *ast.ListItem:
		return one(&Node{Kind: KindListItem, Children: c.children(node)})
	case *ast.Blockquote:
		return one(&Node{Kind: KindBlockquote, Children: c.children(node)})
	case *ast.ThematicBreak:
		return one(&Node{Kind: KindThematicBreak})
	case *ast.FencedCodeBlock:
		return one(&Node{
			Kind:     KindCodeBlock,
			Language: string(node.Language(c.source)),
			Content:  c.lines(node.Lines()),
		})
	case *ast.CodeBlock:
		return one(&Node{Kind: KindCodeBlock, Content: c.lines(node.Lines())})
	case *ast.HTMLBlock:
		if !c.unsafe {
			return nil
		}
		raw := c.lines(node.Lines())
		if node.HasClosure() {
			raw += string(node.ClosureLine.Value(c.source))
		}
		return one(&Node{Kind: KindHTML, Content: raw})
	case *ast.Text:
		return c.text(node)
	case *ast.String:
		return one(&Node{Kind: KindText, Content: string(node.Value)})
	case *ast.CodeSpan:
		return one(&Node{Kind: KindInlineCode, Content: inlineText(c.children(node))})
	case *ast.Emphasis:
		kind := KindEmphasis
		if node.Level >= 2 {
			kind = KindStrong
		}
		return one(&Node{Kind: kind, Children: c.children(node)})
	case *ast.Link:
		return one(&Node{
			Kind:     KindLink,
			Href:     string(node.Destination),
			Title:    string(node.Title),
			Children: c.children(node),
		})
	case *ast.AutoLink:
		href := string(node.URL(c.source))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			href = "mailto:" + href
		}
		return one(&Node{
			Kind:     KindLink,
			Href:     href,
			Children: []*Node{{Kind: KindText, Content: string(node.Label(c.source))}},
		})
	case *ast.Image:
		return one(&Node{
			Kind:  KindImage,
			Src:   string(node.Destination),
			Title: string(node.Title),
			Alt:   inlineText(c.children(node)),
		})
	case *ast.RawHTML:
		if !c.unsafe {
			return nil
		}
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(c.source))
		}
		return one(&Node{Kind: KindHTML, Content: b.String()})
	case *TableScope:
		return c.tableScope(node)
	case *east.Table:
		return one(c.gfmTable(node))
	case *east.Strikethrough:
		return one(&Node{Kind: KindStrikethrough, Children: c.children(node)})
	case *east.TaskCheckBox:
		return one(&Node{Kind: KindTaskCheckBox, Checked: node.IsChecked})
	default:
		return c.children(n)
	}
}

func (c *converter) heading(h *ast.Heading) []*Node {
	if h.Level <= 1 {
		return nil
	}
	children := c.children(h)
	node := &Node{
		Kind:     KindHeading,
		Level:    h.Level,
		Children: children,
	}
	if c.indexed(h) {
		node.ID = c.anchors.resolve(inlineText(children), h.Level)
	}
	return one(node)
}

var atxPrefix = regexp.MustCompile(`^#{2,3}[ \t]*$`)

// indexed reports whether IndexHeadings lists h: an ATX heading whose marker
// sits in column zero of a top level line.
func (c *converter) indexed(h *ast.Heading) bool {
	switch h.Parent().(type) {
	case *ast.Document, *TableScope:
	default:
		return false
	}
	if h.Lines().Len() == 0 {
		return false
	}
	start := h.Lines().At(0).Start
	lineStart := bytes.LastIndexByte(c.source[:start], '\n') + 1
	return atxPrefix.Match(c.source[lineStart:start])
}

func (c *converter) text(t *ast.Text) []*Node {
	content := string(t.Segment.Value(c.source))
	switch {
	case t.HardLineBreak() || (c.hardWraps && t.SoftLineBreak()):
		return []*Node{{Kind: KindText, Content: content}, {Kind: KindLineBreak}}
	case t.SoftLineBreak():
		content += "\n"
	}
	return one(&Node{Kind: KindText, Content: content})
}

// tableScope rebuilds a Markdoc table. The first list of the scope is the
// header row and every further list is a body row, each item becoming a cell.
// Rows keep the number of cells they were written with.
func (c *converter) tableScope(scope *TableScope) []*Node {
	if !scope.Closed {
		if c.err == nil {
			c.err = malformed("table scope is never closed")
		}
		return nil
	}

	var lists []*ast.List
	for child := scope.FirstChild(); child != nil; child = child.NextSibling() {
		if list, ok := child.(*ast.List); ok {
			lists = append(lists, list)
		}
	}
	if len(lists) == 0 {
		return c.children(scope)
	}

	head := &Node{Kind: KindTableHead, Children: []*Node{c.listRow(lists[0], true)}}
	body := &Node{Kind: KindTableBody}
	for _, list := range lists[1:] {
		body.Children = append(body.Children, c.listRow(list, false))
	}
	return one(&Node{Kind: KindTable, Children: []*Node{head, body}})
}

func (c *converter) listRow(list *ast.List, header bool) *Node {
	row := &Node{Kind: KindTableRow}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		content := c.children(item)
		if len(content) == 1 && content[0].Kind == KindParagraph {
			content = content[0].Children
		}
		row.Children = append(row.Children, &Node{
			Kind:     KindTableCell,
			Header:   header,
			Children: content,
		})
	}
	return row
}

func (c *converter) gfmTable(table *east.Table) *Node {
	head := &Node{Kind: KindTableHead}
	body := &Node{Kind: KindTableBody}
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			head.Children = append(head.Children, c.gfmRow(row, true))
		case *east.TableRow:
			body.Children = append(body.Children, c.gfmRow(row, false))
		}
	}
	return &Node{Kind: KindTable, Children: []*Node{head, body}}
}

func (c *converter) gfmRow(row ast.Node, header bool) *Node {
	out := &Node{Kind: KindTableRow}
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		cell, ok := child.(*east.TableCell)
		if !ok {
			continue
		}
		align := ""
		if cell.Alignment != east.AlignNone {
			align = cell.Alignment.String()
		}
		out.Children = append(out.Children, &Node{
			Kind:     KindTableCell,
			Header:   header,
			Align:    align,
			Children: c.children(cell),
		})
	}
	return out
}

func (c *converter) lines(lines *text.Segments) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func inlineText(nodes []*Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.PlainText())
	}
	return b.String()
}

func one(n *Node) []*Node {
	return []*Node{n}
}
