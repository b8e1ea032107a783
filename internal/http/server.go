package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/blog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/render"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Posts is the page service the handlers read from.
type Posts interface {
	Page(ctx context.Context, slug string) (*blog.Page, error)
	Listing(ctx context.Context) []blog.Summary
}

// Catalog serves listings from the SQL catalog when one is configured.
type Catalog interface {
	List(ctx context.Context) ([]*catalog.Entry, error)
	ListByTag(ctx context.Context, tag string) ([]*catalog.Entry, error)
}

// Config wires the API's collaborators. Catalog is optional.
type Config struct {
	Posts       Posts
	Source      interfaces.ContentSource
	Registry    *content.Registry
	Catalog     Catalog
	Renderer    *render.Renderer
	ListingPath string
	Logger      interfaces.Logger
}

// API holds the HTTP handlers.
type API struct {
	posts       Posts
	source      interfaces.ContentSource
	registry    *content.Registry
	catalog     Catalog
	renderer    *render.Renderer
	listingPath string
	logger      interfaces.Logger
}

// NewAPI builds an API from cfg.
func NewAPI(cfg Config) *API {
	listing := "/" + strings.Trim(strings.TrimSpace(cfg.ListingPath), "/")
	if listing == "/" {
		listing = "/blog"
	}
	return &API{
		posts:       cfg.Posts,
		source:      cfg.Source,
		registry:    cfg.Registry,
		catalog:     cfg.Catalog,
		renderer:    cfg.Renderer,
		listingPath: listing,
		logger:      logging.OrNoOp(cfg.Logger),
	}
}

// Router returns the chi router with every route mounted.
func (api *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(api.requestLogger)

	r.Get("/health", api.handleHealth)
	r.Get("/blogs/{file}", api.handleDocument)
	r.Get("/assets/highlight.css", api.handleHighlightCSS)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", api.handlePostList)
		r.Get("/{slug}", api.handlePost)
	})

	r.Get(api.listingPath, api.handleListingPage)
	r.Get(api.listingPath+"/{slug}", api.handlePostPage)

	return r
}

func (api *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		api.logger.Debug("http.request.completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (api *API) handleHighlightCSS(w http.ResponseWriter, r *http.Request) {
	if api.renderer == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	if err := api.renderer.WriteCSS(w); err != nil {
		api.logger.Error("http.assets.css_failed", "error", err)
	}
}
