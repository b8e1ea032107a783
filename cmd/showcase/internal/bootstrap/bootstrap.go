package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/blog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging/gologger"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/render"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/runtimeconfig"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

// Module holds every collaborator the showcase commands need.
type Module struct {
	Config   runtimeconfig.Config
	Provider interfaces.LoggerProvider
	Logger   interfaces.Logger
	Registry *content.Registry
	Source   interfaces.ContentSource
	Loader   *content.Loader
	Renderer *render.Renderer
	Service  *blog.Service
	// Catalog is nil unless the catalog is enabled.
	Catalog *catalog.Service

	db *bun.DB
}

// BuildModule wires the content pipeline from cfg. The catalog database is
// opened and migrated when enabled.
func BuildModule(ctx context.Context, cfg runtimeconfig.Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := NewLoggerProvider(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}

	registry, err := content.NewRegistry(cfg.Content.KnownSlugs)
	if err != nil {
		return nil, fmt.Errorf("build slug registry: %w", err)
	}

	source, err := newSource(cfg.Content)
	if err != nil {
		return nil, err
	}

	loader := content.NewLoader(source, registry, content.WithLogger(logging.ContentLogger(provider)))

	pipeline, err := blog.NewPipeline(cfg.Markdown.Pipeline, cfg.Markdown.Parser, logging.MarkdownLogger(provider))
	if err != nil {
		return nil, err
	}

	renderer := render.New(render.Options{
		HighlightStyle: cfg.Render.HighlightStyle,
		LineNumbers:    cfg.Render.LineNumbers,
		Unsafe:         cfg.Markdown.Parser.Unsafe,
	}, render.WithLogger(logging.RenderLogger(provider)))

	module := &Module{
		Config:   cfg,
		Provider: provider,
		Logger:   logging.ModuleLogger(provider, ""),
		Registry: registry,
		Source:   source,
		Loader:   loader,
		Renderer: renderer,
		Service:  blog.NewService(loader, pipeline, renderer, blog.WithLogger(logging.BlogLogger(provider))),
	}

	if cfg.Catalog.Enabled {
		if err := module.openCatalog(ctx); err != nil {
			return nil, err
		}
	}
	return module, nil
}

// Close releases the catalog database, if any.
func (m *Module) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *Module) openCatalog(ctx context.Context) error {
	db, err := catalog.Open(m.Config.Catalog.Driver, m.Config.Catalog.DSN)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	if err := catalog.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate catalog: %w", err)
	}

	repo := catalog.NewBunEntryRepository(db)
	if ttl := m.Config.Catalog.CacheTTL; ttl > 0 {
		cacheCfg := repocache.DefaultConfig()
		cacheCfg.TTL = ttl
		cacheSvc, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			_ = db.Close()
			return fmt.Errorf("configure catalog cache: %w", err)
		}
		repo = catalog.NewBunEntryRepositoryWithCache(db, cacheSvc, repocache.NewDefaultKeySerializer())
	}

	m.db = db
	m.Catalog = catalog.NewService(repo, catalog.WithLogger(logging.CatalogLogger(m.Provider)))
	return nil
}

// NewLoggerProvider returns the go-logger provider, or nil for the noop
// provider.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "noop":
		return nil, nil
	case "", "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

func newSource(cfg runtimeconfig.ContentConfig) (interfaces.ContentSource, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "fs":
		dir := strings.TrimSpace(cfg.Dir)
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("content dir %q: %w", dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content dir %q is not a directory", dir)
		}
		return content.NewFSSource(os.DirFS(dir), ".", cfg.Extensions...), nil
	case "http":
		opts := []content.HTTPSourceOption{content.WithExtensions(cfg.Extensions...)}
		if cfg.FetchTimeout > 0 {
			opts = append(opts, content.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}))
		}
		return content.NewHTTPSource(cfg.BaseURL, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrContentSourceUnknown, cfg.Source)
	}
}
