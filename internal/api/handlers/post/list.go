package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
)

// ListHandler serves the paginated listing and the two searches
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{service: service}
}

// HandleList handles GET /post?page&size&sort
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePageRequest(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.ListPosts(r.Context(), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleSearchByTitle handles GET /post/title/{title}
func (h *ListHandler) HandleSearchByTitle(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePageRequest(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.SearchByTitle(r.Context(), chi.URLParam(r, "title"), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleSearchByUsername handles GET /post/username/{username}
func (h *ListHandler) HandleSearchByUsername(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePageRequest(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.SearchByUsername(r.Context(), chi.URLParam(r, "username"), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
