// Package blog assembles loaded posts into rendered pages. Rendering is
// selected by name so the content pipeline can change without touching the
// page controllers.
package blog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

const (
	PipelineMarkdoc = "markdoc"
	PipelineGFM     = "gfm"
)

// ErrUnknownPipeline is returned when no strategy is registered for a name.
var ErrUnknownPipeline = errors.New("blog: unknown pipeline")

// Pipeline turns a post body into its heading index and render tree.
type Pipeline interface {
	Name() string
	Index(body []byte) markdown.TOC
	Transform(body []byte, toc markdown.TOC) (*markdown.Node, error)
}

type pipelineFactory func(opts interfaces.ParseOptions, logger interfaces.Logger) Pipeline

var pipelineRegistry = map[string]pipelineFactory{
	PipelineMarkdoc: newMarkdocPipeline,
	PipelineGFM:     newGFMPipeline,
}

// Pipelines lists the registered strategy names.
func Pipelines() []string {
	names := make([]string, 0, len(pipelineRegistry))
	for name := range pipelineRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPipeline builds the named strategy. An empty name selects markdoc.
func NewPipeline(name string, opts interfaces.ParseOptions, logger interfaces.Logger) (Pipeline, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = PipelineMarkdoc
	}
	factory, ok := pipelineRegistry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPipeline, name)
	}
	return factory(opts, logger), nil
}

type transformPipeline struct {
	name        string
	transformer *markdown.Transformer
}

func (p *transformPipeline) Name() string {
	return p.name
}

func (p *transformPipeline) Index(body []byte) markdown.TOC {
	return markdown.IndexHeadings(body)
}

func (p *transformPipeline) Transform(body []byte, toc markdown.TOC) (*markdown.Node, error) {
	return p.transformer.Transform(body, toc)
}

// newMarkdocPipeline always recognises {% table %} scopes on top of the
// configured extensions.
func newMarkdocPipeline(opts interfaces.ParseOptions, logger interfaces.Logger) Pipeline {
	if len(opts.Extensions) > 0 {
		opts.Extensions = append(append([]string(nil), opts.Extensions...), "markdoc-table")
	}
	return &transformPipeline{
		name:        PipelineMarkdoc,
		transformer: markdown.NewTransformer(opts, markdown.WithLogger(logger)),
	}
}

// newGFMPipeline parses plain GitHub flavoured markdown; Markdoc tags are
// left as text.
func newGFMPipeline(opts interfaces.ParseOptions, logger interfaces.Logger) Pipeline {
	var exts []string
	names := opts.Extensions
	if len(names) == 0 {
		names = markdown.DefaultExtensions
	}
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "markdoc", "markdoc-table":
			continue
		}
		exts = append(exts, name)
	}
	if len(exts) == 0 {
		exts = []string{"gfm"}
	}
	opts.Extensions = exts
	return &transformPipeline{
		name:        PipelineGFM,
		transformer: markdown.NewTransformer(opts, markdown.WithLogger(logger)),
	}
}
