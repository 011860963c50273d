package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
)

// UpdateHandler handles post edits
type UpdateHandler struct {
	service posts.Service
	callers handlers.CallerResolver
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service, callers handlers.CallerResolver) *UpdateHandler {
	return &UpdateHandler{
		service: service,
		callers: callers,
	}
}

// HandleUpdate handles PUT /post/{pid}
// The pid in the path wins over any pid in the body.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", chi.URLParam(r, "pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req posts.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}
	req.PID = pid

	caller, err := handlers.ResolveCaller(r, h.callers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	post, err := h.service.UpdatePost(r.Context(), caller, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}
