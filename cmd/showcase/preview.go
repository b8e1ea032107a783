package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/blog"
)

func newPreviewCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Render posts named on stdin, one slug per line",
		Long: `preview reads slugs from stdin and renders each one as it arrives. A slug
read while the previous post is still loading replaces it, and the replaced
post is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := opts.build(cmd.Context())
			if err != nil {
				return err
			}
			defer module.Close()
			return runPreview(cmd.Context(), module.Service, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runPreview(ctx context.Context, pages blog.Pages, in io.Reader, out, errOut io.Writer) error {
	nav := blog.NewNavigator(pages)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		slug := strings.TrimSpace(scanner.Text())
		if slug == "" {
			continue
		}
		wg.Add(1)
		nav.Load(ctx, slug, func(page *blog.Page, err error) {
			defer wg.Done()
			mu.Lock()
			defer mu.Unlock()
			switch {
			case errors.Is(err, blog.ErrSuperseded):
			case err != nil:
				fmt.Fprintf(errOut, "%s: %v\n", slug, err)
			default:
				fmt.Fprintf(out, "<!-- %s -->\n%s\n", slug, page.HTML)
			}
		})
	}
	wg.Wait()
	return scanner.Err()
}
