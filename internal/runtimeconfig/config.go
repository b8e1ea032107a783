package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/pkg/interfaces"
)

var ErrContentSourceUnknown = errors.New("showcase config: content source is invalid")
var ErrContentDirRequired = errors.New("showcase config: content directory is required for the fs source")
var ErrContentBaseURLRequired = errors.New("showcase config: content base url is required for the http source")
var ErrKnownSlugsRequired = errors.New("showcase config: at least one known slug is required")
var ErrPipelineUnknown = errors.New("showcase config: markdown pipeline is invalid")
var ErrCatalogDriverUnknown = errors.New("showcase config: catalog driver is invalid")
var ErrCatalogDSNRequired = errors.New("showcase config: catalog dsn is required when the catalog is enabled")
var ErrServerAddrRequired = errors.New("showcase config: server address is required")
var ErrLoggingProviderUnknown = errors.New("showcase config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("showcase config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("showcase config: logging format is invalid")

// Config is the top-level runtime configuration for the showcase binary.
type Config struct {
	Content  ContentConfig  `mapstructure:"content"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Render   RenderConfig   `mapstructure:"render"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ContentConfig selects where posts are fetched from and which slugs exist.
type ContentConfig struct {
	// Source is "fs" (read from Dir) or "http" (fetch from BaseURL).
	Source       string        `mapstructure:"source"`
	Dir          string        `mapstructure:"dir"`
	BaseURL      string        `mapstructure:"base_url"`
	Extensions   []string      `mapstructure:"extensions"`
	KnownSlugs   []string      `mapstructure:"known_slugs"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// MarkdownConfig picks the pipeline strategy and parser options.
type MarkdownConfig struct {
	Pipeline string                  `mapstructure:"pipeline"`
	Parser   interfaces.ParseOptions `mapstructure:"parser"`
}

// RenderConfig controls HTML output.
type RenderConfig struct {
	HighlightStyle string `mapstructure:"highlight_style"`
	LineNumbers    bool   `mapstructure:"line_numbers"`
}

// CatalogConfig configures the SQL-backed post catalog.
type CatalogConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Driver   string        `mapstructure:"driver"`
	DSN      string        `mapstructure:"dsn"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ListingPath  string        `mapstructure:"listing_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `mapstructure:"provider"`
	Level     string   `mapstructure:"level"`
	Format    string   `mapstructure:"format"`
	AddSource bool     `mapstructure:"add_source"`
	Focus     []string `mapstructure:"focus"`
}

// DefaultKnownSlugs lists the articles published on the site.
var DefaultKnownSlugs = []string{
	"ai-development-trends-2025",
	"healthcare-platform-architecture",
	"macos-python-development",
	"password-management-guide",
	"claude-code-openrouter-guide",
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Source:       "fs",
			Dir:          "blogs",
			Extensions:   []string{".mdoc", ".md"},
			KnownSlugs:   append([]string(nil), DefaultKnownSlugs...),
			FetchTimeout: 10 * time.Second,
		},
		Markdown: MarkdownConfig{
			Pipeline: "markdoc",
		},
		Render: RenderConfig{
			HighlightStyle: "github",
			LineNumbers:    true,
		},
		Catalog: CatalogConfig{
			Driver:   "sqlite",
			DSN:      "file:showcase.db?cache=shared",
			CacheTTL: time.Minute,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ListingPath:  "/blog",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs consistency checks across sections.
func (cfg Config) Validate() error {
	switch normalize(cfg.Content.Source) {
	case "fs":
		if strings.TrimSpace(cfg.Content.Dir) == "" {
			return ErrContentDirRequired
		}
	case "http":
		if strings.TrimSpace(cfg.Content.BaseURL) == "" {
			return ErrContentBaseURLRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrContentSourceUnknown, cfg.Content.Source)
	}
	if len(cfg.Content.KnownSlugs) == 0 {
		return ErrKnownSlugsRequired
	}
	if pipeline := normalize(cfg.Markdown.Pipeline); pipeline != "" && !isSupportedPipeline(pipeline) {
		return fmt.Errorf("%w: %s", ErrPipelineUnknown, cfg.Markdown.Pipeline)
	}
	if cfg.Catalog.Enabled {
		if !isSupportedDriver(normalize(cfg.Catalog.Driver)) {
			return fmt.Errorf("%w: %s", ErrCatalogDriverUnknown, cfg.Catalog.Driver)
		}
		if strings.TrimSpace(cfg.Catalog.DSN) == "" {
			return ErrCatalogDSNRequired
		}
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if provider := normalize(cfg.Logging.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedPipeline(pipeline string) bool {
	switch pipeline {
	case "markdoc", "gfm":
		return true
	default:
		return false
	}
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite", "sqlite3", "postgres", "postgresql":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
