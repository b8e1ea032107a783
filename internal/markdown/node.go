package markdown

import "strings"

// Kind tags the variant a Node represents.
type Kind string

const (
	KindDocument      Kind = "document"
	KindHeading       Kind = "heading"
	KindParagraph     Kind = "paragraph"
	KindText          Kind = "text"
	KindEmphasis      Kind = "emphasis"
	KindStrong        Kind = "strong"
	KindStrikethrough Kind = "strikethrough"
	KindLineBreak     Kind = "line_break"
	KindThematicBreak Kind = "thematic_break"
	KindList          Kind = "list"
	KindListItem      Kind = "list_item"
	KindTaskCheckBox  Kind = "task_checkbox"
	KindCodeBlock     Kind = "code_block"
	KindInlineCode    Kind = "inline_code"
	KindBlockquote    Kind = "blockquote"
	KindLink          Kind = "link"
	KindImage         Kind = "image"
	KindTable         Kind = "table"
	KindTableHead     Kind = "table_head"
	KindTableBody     Kind = "table_body"
	KindTableRow      Kind = "table_row"
	KindTableCell     Kind = "table_cell"
	KindHTML          Kind = "html"
)

// Node is one element of a render tree. Only the fields relevant to Kind are
// populated.
type Node struct {
	Kind     Kind    `json:"kind"`
	Level    int     `json:"level,omitempty"`
	ID       string  `json:"id,omitempty"`
	Ordered  bool    `json:"ordered,omitempty"`
	Start    int     `json:"start,omitempty"`
	Checked  bool    `json:"checked,omitempty"`
	Language string  `json:"language,omitempty"`
	Content  string  `json:"content,omitempty"`
	Href     string  `json:"href,omitempty"`
	Src      string  `json:"src,omitempty"`
	Alt      string  `json:"alt,omitempty"`
	Title    string  `json:"title,omitempty"`
	Header   bool    `json:"header,omitempty"`
	Align    string  `json:"align,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// PlainText concatenates the text content below n.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	switch n.Kind {
	case KindText, KindInlineCode, KindCodeBlock:
		b.WriteString(n.Content)
		return
	case KindImage:
		b.WriteString(n.Alt)
		return
	case KindLineBreak:
		b.WriteByte('\n')
		return
	}
	for _, child := range n.Children {
		child.writeText(b)
	}
}

// Head returns the head section of a table node.
func (n *Node) Head() *Node {
	return n.section(KindTableHead)
}

// Body returns the body section of a table node.
func (n *Node) Body() *Node {
	return n.section(KindTableBody)
}

func (n *Node) section(kind Kind) *Node {
	if n == nil || n.Kind != KindTable {
		return nil
	}
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Find collects every node of the given kind in document order.
func Find(root *Node, kind Kind) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}
