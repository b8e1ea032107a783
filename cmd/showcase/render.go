package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newRenderCommand(opts *rootOptions) *cobra.Command {
	var (
		asJSON bool
		css    bool
	)

	cmd := &cobra.Command{
		Use:   "render <slug>",
		Short: "Render one post to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, cmd.OutOrStdout(), args[0], asJSON, css)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page (metadata, contents and tree) as JSON")
	cmd.Flags().BoolVar(&css, "css", false, "print the syntax highlighting stylesheet instead of a post")
	return cmd
}

func runRender(ctx context.Context, opts *rootOptions, out io.Writer, slug string, asJSON, css bool) error {
	module, err := opts.build(ctx)
	if err != nil {
		return err
	}
	defer module.Close()

	if css {
		return module.Renderer.WriteCSS(out)
	}

	page, err := module.Service.Page(ctx, slug)
	if err != nil {
		return fmt.Errorf("render %s: %w", slug, err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}
	_, err = io.WriteString(out, page.HTML)
	return err
}
