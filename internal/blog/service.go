package blog

import (
	"context"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/render"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Page is a fully rendered post.
type Page struct {
	Post        *interfaces.Post `json:"post"`
	DisplayDate string           `json:"display_date"`
	TOC         markdown.TOC     `json:"toc"`
	Tree        *markdown.Node   `json:"tree"`
	HTML        string           `json:"-"`
}

// Summary is the listing view of a post.
type Summary struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Author        string   `json:"author"`
	PublishedDate string   `json:"published_date"`
	DisplayDate   string   `json:"display_date"`
	FeaturedImage string   `json:"featured_image,omitempty"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`
	ReadingTime   string   `json:"reading_time"`
}

// Pages is implemented by Service and consumed by the Navigator.
type Pages interface {
	Page(ctx context.Context, slug string) (*Page, error)
}

// Service loads posts and runs them through the configured pipeline.
type Service struct {
	loader   interfaces.PostLoader
	pipeline Pipeline
	renderer *render.Renderer
	logger   interfaces.Logger
}

var _ Pages = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logging.OrNoOp(logger)
	}
}

// NewService wires a loader, pipeline and renderer together.
func NewService(loader interfaces.PostLoader, pipeline Pipeline, renderer *render.Renderer, opts ...ServiceOption) *Service {
	s := &Service{
		loader:   loader,
		pipeline: pipeline,
		renderer: renderer,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pipeline returns the active strategy.
func (s *Service) Pipeline() Pipeline {
	return s.pipeline
}

// Page loads and renders slug. Absent posts return an error matching
// content.IsNotFound; bodies that cannot be parsed return an error matching
// markdown.IsMalformed.
func (s *Service) Page(ctx context.Context, slug string) (*Page, error) {
	logger := logging.WithPostContext(s.logger, slug, "", "page")

	post, err := s.loader.Load(ctx, slug)
	if err != nil {
		return nil, err
	}

	body := []byte(post.Body)
	toc := s.pipeline.Index(body)
	tree, err := s.pipeline.Transform(body, toc)
	if err != nil {
		logger.Error("blog.page.transform_failed", "pipeline", s.pipeline.Name(), "error", err)
		return nil, err
	}

	page := &Page{
		Post:        post,
		DisplayDate: content.FormatDate(post.PublishedDate),
		TOC:         toc,
		Tree:        tree,
	}
	if s.renderer != nil {
		html, err := s.renderer.RenderString(render.Input{
			Tree:          tree,
			Title:         post.Title,
			FeaturedImage: post.FeaturedImage,
		})
		if err != nil {
			logger.Error("blog.page.render_failed", "error", err)
			return nil, err
		}
		page.HTML = html
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("blog.page.completed", "pipeline", s.pipeline.Name(), "headings", len(toc))
	return page, nil
}

// Listing returns summaries of every loadable post, newest first.
func (s *Service) Listing(ctx context.Context) []Summary {
	posts := s.loader.LoadAll(ctx)
	out := make([]Summary, 0, len(posts))
	for _, post := range posts {
		out = append(out, Summarize(post))
	}
	return out
}

// Summarize projects a post onto its listing fields.
func Summarize(post *interfaces.Post) Summary {
	return Summary{
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		Author:        post.Author,
		PublishedDate: post.PublishedDate,
		DisplayDate:   content.FormatDate(post.PublishedDate),
		FeaturedImage: post.FeaturedImage,
		Tags:          append([]string(nil), post.Tags...),
		Featured:      post.Featured,
		ReadingTime:   post.ReadingTime,
	}
}
