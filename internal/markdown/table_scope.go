package markdown

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindTableScope identifies a {% table %} ... {% /table %} block.
var KindTableScope = ast.NewNodeKind("TableScope")

// TableScope is the container produced for a Markdoc table tag. Its children
// are the blocks written between the opening and closing tags.
type TableScope struct {
	ast.BaseBlock
	// Closed is set once the closing tag has been consumed.
	Closed bool
}

func (n *TableScope) Kind() ast.NodeKind {
	return KindTableScope
}

func (n *TableScope) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Closed": strconv.FormatBool(n.Closed),
	}, nil)
}

var (
	tableOpenTag  = regexp.MustCompile(`^\s{0,3}\{%\s*table(\s[^%]*)?%\}\s*$`)
	tableCloseTag = regexp.MustCompile(`^\s{0,3}\{%\s*/table\s*%\}\s*$`)
	thematicBreak = regexp.MustCompile(`^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`)
)

type tableScopeParser struct{}

func (p *tableScopeParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *tableScopeParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	if !tableOpenTag.Match(trimNewline(line)) {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - newlineWidth(line))
	return &TableScope{}, parser.HasChildren
}

func (p *tableScopeParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if tableCloseTag.Match(trimNewline(line)) {
		reader.Advance(segment.Len() - newlineWidth(line))
		if scope, ok := node.(*TableScope); ok {
			scope.Closed = true
		}
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *tableScopeParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *tableScopeParser) CanInterruptParagraph() bool {
	return true
}

func (p *tableScopeParser) CanAcceptIndentedLine() bool {
	return false
}

func trimNewline(line []byte) []byte {
	return line[:len(line)-newlineWidth(line)]
}

func newlineWidth(line []byte) int {
	switch {
	case bytes.HasSuffix(line, []byte("\r\n")):
		return 2
	case bytes.HasSuffix(line, []byte("\n")):
		return 1
	}
	return 0
}

type markdocTable struct{}

// MarkdocTable enables {% table %} scopes in a goldmark instance.
var MarkdocTable goldmark.Extender = &markdocTable{}

func (e *markdocTable) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&tableScopeParser{}, 50),
	))
}

// separateTableRows puts a blank line in front of every thematic break that
// sits inside a table scope, so a `---` row separator directly under a list
// item is never read as a setext underline or lazy continuation.
func separateTableRows(body []byte) []byte {
	lines := bytes.SplitAfter(body, []byte("\n"))
	out := make([]byte, 0, len(body)+64)
	var fence fenceState
	inScope := false
	prevBlank := true
	for _, raw := range lines {
		line := string(trimNewline(raw))
		switch {
		case fence.consume(line):
		case tableOpenTag.MatchString(line):
			inScope = true
		case tableCloseTag.MatchString(line):
			inScope = false
		case inScope && thematicBreak.MatchString(line) && !prevBlank:
			out = append(out, '\n')
		}
		out = append(out, raw...)
		prevBlank = len(bytes.TrimSpace(raw)) == 0
	}
	return out
}
