package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/cmd/showcase/internal/bootstrap"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/runtimeconfig"
)

const envPrefix = "SHOWCASE"

var moduleBuilder = bootstrap.BuildModule

type rootOptions struct {
	configFile string
	config     runtimeconfig.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "showcase",
		Short: "Portfolio blog content pipeline",
		Long: `showcase fetches the portfolio's Markdoc articles, builds their table of
contents and rendered HTML, and serves them over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./showcase.yaml)")

	cmd.AddCommand(
		newServeCommand(opts),
		newRenderCommand(opts),
		newPreviewCommand(opts),
		newSyncCommand(opts),
	)
	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := loadConfig(o.configFile)
	if err != nil {
		return err
	}
	o.config = cfg
	return nil
}

func (o *rootOptions) build(ctx context.Context) (*bootstrap.Module, error) {
	module, err := moduleBuilder(ctx, o.config)
	if err != nil {
		return nil, fmt.Errorf("bootstrap module: %w", err)
	}
	return module, nil
}

// loadConfig layers defaults, an optional config file and SHOWCASE_*
// environment variables.
func loadConfig(file string) (runtimeconfig.Config, error) {
	v := viper.New()
	setDefaults(v, runtimeconfig.DefaultConfig())

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("showcase")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return runtimeconfig.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg runtimeconfig.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return runtimeconfig.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return runtimeconfig.Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg runtimeconfig.Config) {
	v.SetDefault("content.source", cfg.Content.Source)
	v.SetDefault("content.dir", cfg.Content.Dir)
	v.SetDefault("content.base_url", cfg.Content.BaseURL)
	v.SetDefault("content.extensions", cfg.Content.Extensions)
	v.SetDefault("content.known_slugs", cfg.Content.KnownSlugs)
	v.SetDefault("content.fetch_timeout", cfg.Content.FetchTimeout)

	v.SetDefault("markdown.pipeline", cfg.Markdown.Pipeline)
	v.SetDefault("markdown.parser.extensions", cfg.Markdown.Parser.Extensions)
	v.SetDefault("markdown.parser.hard_wraps", cfg.Markdown.Parser.HardWraps)
	v.SetDefault("markdown.parser.unsafe", cfg.Markdown.Parser.Unsafe)

	v.SetDefault("render.highlight_style", cfg.Render.HighlightStyle)
	v.SetDefault("render.line_numbers", cfg.Render.LineNumbers)

	v.SetDefault("catalog.enabled", cfg.Catalog.Enabled)
	v.SetDefault("catalog.driver", cfg.Catalog.Driver)
	v.SetDefault("catalog.dsn", cfg.Catalog.DSN)
	v.SetDefault("catalog.cache_ttl", cfg.Catalog.CacheTTL)

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.listing_path", cfg.Server.ListingPath)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)

	v.SetDefault("logging.provider", cfg.Logging.Provider)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.add_source", cfg.Logging.AddSource)
	v.SetDefault("logging.focus", cfg.Logging.Focus)
}
