package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

func renderBody(t *testing.T, body string, in Input) string {
	t.Helper()
	tr := markdown.NewTransformer(interfaces.ParseOptions{})
	tree, err := tr.Transform([]byte(body), markdown.IndexHeadings([]byte(body)))
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	in.Tree = tree
	out, err := New(Options{HighlightStyle: "github", LineNumbers: true}).RenderString(in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestRenderPlacesFeaturedImageBeforeFirstSection(t *testing.T) {
	out := renderBody(t, "Lead paragraph.\n\n## Intro\n\nText\n\n## Details\n", Input{
		Title:         "Healthcare Platform",
		FeaturedImage: "/images/cover.png",
	})

	img := strings.Index(out, `src="/images/cover.png"`)
	h2 := strings.Index(out, `<h2 id="heading-0">`)
	lead := strings.Index(out, "Lead paragraph.")
	if img < 0 || h2 < 0 {
		t.Fatalf("expected featured image and heading in output:\n%s", out)
	}
	if !(lead < img && img < h2) {
		t.Fatalf("expected image between lead and first heading:\n%s", out)
	}
	if strings.Count(out, "/images/cover.png") != 1 {
		t.Fatalf("expected the featured image once:\n%s", out)
	}
	if !strings.Contains(out, `<h2 id="heading-1">Details</h2>`) {
		t.Fatalf("expected second heading anchor:\n%s", out)
	}
}

func TestRenderWithoutFeaturedImage(t *testing.T) {
	out := renderBody(t, "## Intro\n", Input{})
	if strings.Contains(out, "<img") {
		t.Fatalf("expected no image:\n%s", out)
	}
}

func TestRenderLinksOpenInNewTab(t *testing.T) {
	out := renderBody(t, "Read [the guide](https://example.com/a?b=1&c=2).\n", Input{})
	want := `<a href="https://example.com/a?b=1&amp;c=2" target="_blank" rel="noopener noreferrer">the guide</a>`
	if !strings.Contains(out, want) {
		t.Fatalf("expected %s in:\n%s", want, out)
	}
}

func TestRenderBlanksDangerousURLs(t *testing.T) {
	body := "[click](javascript:alert(1))\n\n![x](javascript:alert(2))\n\n![ok](data:image/png;base64,AAAA)\n"
	out := renderBody(t, body, Input{FeaturedImage: "vbscript:msgbox(1)"})

	if strings.Contains(out, "javascript:") || strings.Contains(out, "vbscript:") {
		t.Fatalf("expected dangerous urls to be removed:\n%s", out)
	}
	if !strings.Contains(out, `<a href="" target="_blank" rel="noopener noreferrer">click</a>`) {
		t.Fatalf("expected link with empty href:\n%s", out)
	}
	if !strings.Contains(out, `src="data:image/png;base64,AAAA"`) {
		t.Fatalf("expected inline png to be kept:\n%s", out)
	}
}

func TestRenderUnsafeKeepsURLs(t *testing.T) {
	body := "[click](javascript:alert(1))\n"
	tree, err := markdown.NewTransformer(interfaces.ParseOptions{}).Transform([]byte(body), nil)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	out, err := New(Options{Unsafe: true}).RenderString(Input{Tree: tree})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `href="javascript:alert(1)"`) {
		t.Fatalf("expected url to pass through in unsafe mode:\n%s", out)
	}
}

func TestRenderEscapesText(t *testing.T) {
	out := renderBody(t, "A `<b>` tag and 1 < 2 & \"quotes\".\n", Input{})
	if strings.Contains(out, "<b>") {
		t.Fatalf("expected inline code to be escaped:\n%s", out)
	}
	if !strings.Contains(out, "<code>&lt;b&gt;</code>") || !strings.Contains(out, "1 &lt; 2 &amp;") {
		t.Fatalf("unexpected escaping:\n%s", out)
	}
}

func TestRenderTableSections(t *testing.T) {
	out := renderBody(t, "{% table %}\n* Layer\n* Owner\n---\n* API\n{% /table %}\n", Input{})
	for _, want := range []string{"<table>", "<thead>", "<th>Layer</th><th>Owner</th>", "<tbody>", "<td>API</td>", "</table>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<ul>") {
		t.Fatalf("table lists should not render as lists:\n%s", out)
	}
}

func TestRenderHeaderOnlyTableOmitsBody(t *testing.T) {
	out := renderBody(t, "{% table %}\n* Layer\n* Owner\n{% /table %}\n", Input{})
	if !strings.Contains(out, "<th>Layer</th><th>Owner</th>") {
		t.Fatalf("expected header cells:\n%s", out)
	}
	if strings.Contains(out, "<tbody>") {
		t.Fatalf("expected no body section:\n%s", out)
	}
}

func TestRenderCodeBlocks(t *testing.T) {
	out := renderBody(t, "```go\nfunc main() {}\n```\n\n```nosuchlanguage\n<x>\n```\n\n```\nplain & simple\n```\n", Input{})

	if !strings.Contains(out, "chroma") {
		t.Fatalf("expected highlighted go block:\n%s", out)
	}
	if !strings.Contains(out, `<pre><code class="language-nosuchlanguage">&lt;x&gt;`) {
		t.Fatalf("expected plain block for unknown language:\n%s", out)
	}
	if !strings.Contains(out, "<pre><code>plain &amp; simple\n</code></pre>") {
		t.Fatalf("expected plain block without language:\n%s", out)
	}
}

func TestRenderNilTree(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{}).Render(&buf, Input{}); err != nil || buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q (%v)", buf.String(), err)
	}
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := New(Options{HighlightStyle: "github"}).WriteCSS(&buf); err != nil {
		t.Fatalf("write css: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Fatalf("expected chroma classes in css")
	}
}
