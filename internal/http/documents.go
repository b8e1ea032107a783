package http

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/logging"
)

// handleDocument serves the raw markdown document for /blogs/<slug>.<ext>.
func (api *API) handleDocument(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	slug := strings.TrimSuffix(file, ext)
	if ext == "" || api.source == nil || !api.registry.Known(slug) {
		http.NotFound(w, r)
		return
	}

	res, err := api.source.Fetch(r.Context(), slug)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		logging.WithPostContext(api.logger, slug, "", "document").Error("http.document.fetch_failed", "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	if path.Ext(res.Location) != ext {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if !res.Modified.IsZero() {
		w.Header().Set("Last-Modified", res.Modified.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
