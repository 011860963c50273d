package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
)

// DeleteHandler handles single and batch post deletion
type DeleteHandler struct {
	service posts.Service
	callers handlers.CallerResolver
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service, callers handlers.CallerResolver) *DeleteHandler {
	return &DeleteHandler{
		service: service,
		callers: callers,
	}
}

// HandleDelete handles DELETE /post/{pid} and responds with the deleted pid
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", chi.URLParam(r, "pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	caller, err := handlers.ResolveCaller(r, h.callers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	deleted, err := h.service.DeletePost(r.Context(), caller, pid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, deleted)
}

// HandleDeleteBatch handles DELETE /post with body {"ids": [...]}.
// Responds with the number of posts deleted. Guarded by the admin token.
func (h *DeleteHandler) HandleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 100*1024)

	var req posts.DeletePostsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	count, err := h.service.DeletePosts(r.Context(), req.IDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, count)
}
