package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

var headingLine = regexp.MustCompile(`^(#{2,3})[ \t]+(.+)$`)

// TOC is the ordered heading index of a body.
type TOC []interfaces.TOCEntry

// Empty reports whether there is nothing to show in a contents panel.
func (t TOC) Empty() bool {
	return len(t) == 0
}

// IndexHeadings scans the raw body line by line and records every level two
// or three ATX heading. IDs are assigned from one counter shared by both
// levels. Lines inside fenced code blocks are ignored.
func IndexHeadings(body []byte) TOC {
	toc := TOC{}
	var fence fenceState
	for _, raw := range bytes.Split(body, []byte("\n")) {
		line := strings.TrimRight(string(raw), "\r")
		if fence.consume(line) {
			continue
		}
		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := strings.TrimRight(m[2], " \t")
		if text == "" {
			continue
		}
		toc = append(toc, interfaces.TOCEntry{
			ID:    fmt.Sprintf("heading-%d", len(toc)),
			Text:  text,
			Level: len(m[1]),
		})
	}
	return toc
}

// fenceState tracks whether the scanner sits inside a fenced code block.
type fenceState struct {
	marker byte
	length int
}

// consume reports whether line belongs to a fenced code block, including the
// fence lines themselves.
func (f *fenceState) consume(line string) bool {
	marker, length, rest := fenceOpening(line)
	if f.length == 0 {
		if length == 0 {
			return false
		}
		if marker == '`' && strings.ContainsRune(rest, '`') {
			return false
		}
		f.marker, f.length = marker, length
		return true
	}
	if marker == f.marker && length >= f.length && strings.TrimSpace(rest) == "" {
		f.marker, f.length = 0, 0
	}
	return true
}

func fenceOpening(line string) (byte, int, string) {
	indent := 0
	for indent < len(line) && indent < 4 && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent >= len(line) {
		return 0, 0, ""
	}
	marker := line[indent]
	if marker != '`' && marker != '~' {
		return 0, 0, ""
	}
	n := indent
	for n < len(line) && line[n] == marker {
		n++
	}
	if n-indent < 3 {
		return 0, 0, ""
	}
	return marker, n - indent, line[n:]
}

// anchors hands out TOC ids to headings as the transformer meets them. Each
// entry is consumed at most once.
type anchors struct {
	entries TOC
	used    []bool
}

func newAnchors(toc TOC) *anchors {
	return &anchors{entries: toc, used: make([]bool, len(toc))}
}

// resolve returns the id for a heading with the given rendered text. The first
// unconsumed entry with the same text wins; headings whose inline markup
// differs from the raw line are matched on their loosened text next.
func (a *anchors) resolve(text string, level int) string {
	if level < 2 || level > 3 {
		return ""
	}
	for i, entry := range a.entries {
		if !a.used[i] && entry.Level == level && entry.Text == text {
			a.used[i] = true
			return entry.ID
		}
	}
	loose := loosen(text)
	for i, entry := range a.entries {
		if !a.used[i] && entry.Level == level && loosen(entry.Text) == loose {
			a.used[i] = true
			return entry.ID
		}
	}
	return ""
}

var (
	inlineLink     = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	closingHashes  = regexp.MustCompile(`[ \t]+#+$`)
	inlineMarkup   = strings.NewReplacer("*", "", "_", "", "`", "", "~", "", "\\", "")
	collapseSpaces = regexp.MustCompile(`\s+`)
)

func loosen(s string) string {
	s = closingHashes.ReplaceAllString(strings.TrimSpace(s), "")
	s = inlineLink.ReplaceAllString(s, "$1")
	s = inlineMarkup.Replace(s)
	return strings.TrimSpace(collapseSpaces.ReplaceAllString(s, " "))
}
