package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/catalog"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/content"
	"github.com/zeeshanahmad-io/zeeshanahmad-dev-showcase/internal/markdown"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	case content.IsNotFound(err), errors.Is(err, catalog.ErrEntryNotFound):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "post not found"}
	case markdown.IsMalformed(err):
		return http.StatusUnprocessableEntity, errorResponse{Error: "malformed_body", Message: "post body could not be parsed"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
	}
}
