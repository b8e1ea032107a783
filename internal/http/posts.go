package http

import (
	"bytes"
	"html/template"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/blog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
)

type postListResponse struct {
	Posts []blog.Summary `json:"posts"`
	Total int            `json:"total"`
}

// handlePostList serves GET /api/posts, optionally filtered by ?tag=.
func (api *API) handlePostList(w http.ResponseWriter, r *http.Request) {
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	summaries, err := api.summaries(r, tag)
	if err != nil {
		api.logger.Error("http.posts.list_failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postListResponse{Posts: summaries, Total: len(summaries)})
}

func (api *API) summaries(r *http.Request, tag string) ([]blog.Summary, error) {
	if api.catalog != nil {
		var (
			entries []*catalog.Entry
			err     error
		)
		if tag != "" {
			entries, err = api.catalog.ListByTag(r.Context(), tag)
		} else {
			entries, err = api.catalog.List(r.Context())
		}
		if err != nil {
			return nil, err
		}
		out := make([]blog.Summary, 0, len(entries))
		for _, entry := range entries {
			out = append(out, summaryFromEntry(entry))
		}
		return out, nil
	}

	all := api.posts.Listing(r.Context())
	if tag == "" {
		return all, nil
	}
	out := make([]blog.Summary, 0, len(all))
	for _, summary := range all {
		if slices.Contains(summary.Tags, tag) {
			out = append(out, summary)
		}
	}
	return out, nil
}

func summaryFromEntry(entry *catalog.Entry) blog.Summary {
	return blog.Summary{
		Slug:          entry.Slug,
		Title:         entry.Title,
		Excerpt:       entry.Excerpt,
		Author:        entry.Author,
		PublishedDate: entry.PublishedDate,
		DisplayDate:   content.FormatDate(entry.PublishedDate),
		FeaturedImage: entry.FeaturedImage,
		Tags:          entry.Tags,
		Featured:      entry.Featured,
		ReadingTime:   entry.ReadingTime,
	}
}

// handlePost serves GET /api/posts/{slug}.
func (api *API) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := api.posts.Page(r.Context(), slug)
	if err != nil {
		if !content.IsNotFound(err) {
			api.logger.Error("http.posts.page_failed", "slug", slug, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handlePostPage serves the rendered article. Absent posts redirect to the
// listing; bodies that fail to parse get an error panel.
func (api *API) handlePostPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := api.posts.Page(r.Context(), slug)
	switch {
	case err == nil:
	case content.IsNotFound(err):
		http.Redirect(w, r, api.listingPath, http.StatusFound)
		return
	default:
		logging.WithPostContext(api.logger, slug, "", "page").Error("http.page.failed", "error", err)
		status := http.StatusInternalServerError
		message := "Something went wrong while loading this article."
		if markdown.IsMalformed(err) {
			message = "This article could not be rendered."
		}
		api.writeHTML(w, status, errorPanelTemplate, errorPanelView{Message: message, Back: api.listingPath})
		return
	}

	api.writeHTML(w, http.StatusOK, postPageTemplate, postPageView{
		Page:        page,
		Body:        template.HTML(page.HTML),
		ListingPath: api.listingPath,
	})
}

// handleListingPage serves the article index.
func (api *API) handleListingPage(w http.ResponseWriter, r *http.Request) {
	api.writeHTML(w, http.StatusOK, listingTemplate, listingView{
		Posts:       api.posts.Listing(r.Context()),
		ListingPath: api.listingPath,
	})
}

func (api *API) writeHTML(w http.ResponseWriter, status int, tpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		api.logger.Error("http.template.failed", "template", tpl.Name(), "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
