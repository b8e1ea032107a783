// Package render writes markdown render trees as HTML fragments.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Options configures code highlighting and URL filtering.
type Options struct {
	HighlightStyle string
	LineNumbers    bool
	// Unsafe keeps javascript:, vbscript:, file: and non-image data: URLs in
	// links and images. They are blanked otherwise.
	Unsafe bool
}

// Input is everything needed to render one post body.
type Input struct {
	Tree          *markdown.Node
	Title         string
	FeaturedImage string
}

// Renderer maps render tree nodes onto HTML elements.
type Renderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	unsafe    bool
	logger    interfaces.Logger
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used when highlighting falls back to plain output.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.OrNoOp(logger)
	}
}

// New builds a renderer. Unknown style names fall back to chroma's default.
func New(opts Options, options ...Option) *Renderer {
	formatterOpts := []chromahtml.Option{chromahtml.WithClasses(true)}
	if opts.LineNumbers {
		formatterOpts = append(formatterOpts, chromahtml.WithLineNumbers(true))
	}
	r := &Renderer{
		style:     styles.Get(opts.HighlightStyle),
		formatter: chromahtml.New(formatterOpts...),
		unsafe:    opts.Unsafe,
		logger:    logging.NoOp(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// WriteCSS writes the stylesheet for highlighted code blocks.
func (r *Renderer) WriteCSS(w io.Writer) error {
	return r.formatter.WriteCSS(w, r.style)
}

// Render writes in.Tree as HTML. When a featured image is set it is emitted
// once, directly before the first level two heading.
func (r *Renderer) Render(w io.Writer, in Input) error {
	if in.Tree == nil {
		return nil
	}
	state := &renderState{
		Renderer:      r,
		out:           &errWriter{w: w},
		featuredImage: strings.TrimSpace(in.FeaturedImage),
		title:         in.Title,
	}
	state.children(in.Tree)
	return state.out.err
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(in Input) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

type renderState struct {
	*Renderer
	out           *errWriter
	featuredImage string
	featuredDone  bool
	title         string
}

func (s *renderState) children(n *markdown.Node) {
	for _, child := range n.Children {
		s.node(child)
	}
}

func (s *renderState) wrap(tag string, n *markdown.Node) {
	s.out.WriteString("<" + tag + ">")
	s.children(n)
	s.out.WriteString("</" + tag + ">")
}

func (s *renderState) node(n *markdown.Node) {
	switch n.Kind {
	case markdown.KindDocument:
		s.children(n)
	case markdown.KindHeading:
		s.heading(n)
	case markdown.KindParagraph:
		s.wrap("p", n)
		s.out.WriteString("\n")
	case markdown.KindText:
		s.out.WriteString(html.EscapeString(n.Content))
	case markdown.KindEmphasis:
		s.wrap("em", n)
	case markdown.KindStrong:
		s.wrap("strong", n)
	case markdown.KindStrikethrough:
		s.wrap("del", n)
	case markdown.KindLineBreak:
		s.out.WriteString("<br>\n")
	case markdown.KindThematicBreak:
		s.out.WriteString("<hr>\n")
	case markdown.KindList:
		s.list(n)
	case markdown.KindListItem:
		s.wrap("li", n)
		s.out.WriteString("\n")
	case markdown.KindTaskCheckBox:
		if n.Checked {
			s.out.WriteString(`<input type="checkbox" checked disabled> `)
		} else {
			s.out.WriteString(`<input type="checkbox" disabled> `)
		}
	case markdown.KindBlockquote:
		s.out.WriteString("<blockquote>\n")
		s.children(n)
		s.out.WriteString("</blockquote>\n")
	case markdown.KindCodeBlock:
		s.codeBlock(n)
	case markdown.KindInlineCode:
		s.out.WriteString("<code>" + html.EscapeString(n.Content) + "</code>")
	case markdown.KindLink:
		s.link(n)
	case markdown.KindImage:
		s.image(n.Src, n.Alt, n.Title, "")
	case markdown.KindTable:
		s.table(n)
	case markdown.KindTableRow:
		s.out.WriteString("<tr>")
		s.children(n)
		s.out.WriteString("</tr>\n")
	case markdown.KindTableCell:
		s.cell(n)
	case markdown.KindHTML:
		s.out.WriteString(n.Content)
	default:
		s.children(n)
	}
}

func (s *renderState) heading(n *markdown.Node) {
	if n.Level == 2 && !s.featuredDone && s.featuredImage != "" {
		s.featuredDone = true
		s.image(s.featuredImage, s.title, "", "featured-image")
		s.out.WriteString("\n")
	}
	tag := fmt.Sprintf("h%d", n.Level)
	if n.ID != "" {
		s.out.WriteString(fmt.Sprintf(`<%s id="%s">`, tag, html.EscapeString(n.ID)))
	} else {
		s.out.WriteString("<" + tag + ">")
	}
	s.children(n)
	s.out.WriteString("</" + tag + ">\n")
}

func (s *renderState) list(n *markdown.Node) {
	switch {
	case n.Ordered && n.Start > 1:
		s.out.WriteString(fmt.Sprintf(`<ol start="%d">`, n.Start))
	case n.Ordered:
		s.out.WriteString("<ol>")
	default:
		s.out.WriteString("<ul>")
	}
	s.out.WriteString("\n")
	s.children(n)
	if n.Ordered {
		s.out.WriteString("</ol>\n")
	} else {
		s.out.WriteString("</ul>\n")
	}
}

func (s *renderState) link(n *markdown.Node) {
	attrs := fmt.Sprintf(`href="%s" target="_blank" rel="noopener noreferrer"`, html.EscapeString(s.url(n.Href)))
	if n.Title != "" {
		attrs += fmt.Sprintf(` title="%s"`, html.EscapeString(n.Title))
	}
	s.out.WriteString("<a " + attrs + ">")
	s.children(n)
	s.out.WriteString("</a>")
}

func (s *renderState) url(raw string) string {
	if !s.unsafe && goldmarkhtml.IsDangerousURL([]byte(raw)) {
		return ""
	}
	return raw
}

func (s *renderState) image(src, alt, title, class string) {
	attrs := fmt.Sprintf(`src="%s" alt="%s"`, html.EscapeString(s.url(src)), html.EscapeString(alt))
	if title != "" {
		attrs += fmt.Sprintf(` title="%s"`, html.EscapeString(title))
	}
	if class != "" {
		attrs += fmt.Sprintf(` class="%s"`, class)
	}
	s.out.WriteString(`<img ` + attrs + ` loading="lazy">`)
}

// table writes the head section, then the body section when it has rows.
func (s *renderState) table(n *markdown.Node) {
	s.out.WriteString("<table>\n")
	if head := n.Head(); head != nil {
		s.out.WriteString("<thead>\n")
		s.children(head)
		s.out.WriteString("</thead>\n")
	}
	if body := n.Body(); body != nil && len(body.Children) > 0 {
		s.out.WriteString("<tbody>\n")
		s.children(body)
		s.out.WriteString("</tbody>\n")
	}
	s.out.WriteString("</table>\n")
}

func (s *renderState) cell(n *markdown.Node) {
	tag := "td"
	if n.Header {
		tag = "th"
	}
	if n.Align != "" {
		s.out.WriteString(fmt.Sprintf(`<%s style="text-align:%s">`, tag, html.EscapeString(n.Align)))
	} else {
		s.out.WriteString("<" + tag + ">")
	}
	s.children(n)
	s.out.WriteString("</" + tag + ">")
}

// codeBlock highlights known languages. Anything chroma cannot lex, or fails
// to format, is written as an escaped plain block.
func (s *renderState) codeBlock(n *markdown.Node) {
	lang := strings.ToLower(strings.TrimSpace(n.Language))
	if lang != "" {
		if lexer := lexers.Get(lang); lexer != nil {
			var buf bytes.Buffer
			err := s.highlight(&buf, chroma.Coalesce(lexer), n.Content)
			if err == nil {
				s.out.WriteString(buf.String())
				return
			}
			s.logger.Debug("render.highlight.failed", "language", lang, "error", err)
		}
	}

	if lang != "" {
		s.out.WriteString(fmt.Sprintf(`<pre><code class="language-%s">`, html.EscapeString(lang)))
	} else {
		s.out.WriteString("<pre><code>")
	}
	s.out.WriteString(html.EscapeString(n.Content))
	s.out.WriteString("</code></pre>\n")
}

func (s *renderState) highlight(w io.Writer, lexer chroma.Lexer, code string) error {
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return s.formatter.Format(w, s.style, iterator)
}
