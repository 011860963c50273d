package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
)

// GetHandler serves single posts
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGet handles GET /post/{pid}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", chi.URLParam(r, "pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), pid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
