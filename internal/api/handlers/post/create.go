package post

import (
	"encoding/json"
	"errors"
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
)

// maxBodyBytes bounds post bodies; contents are capped at 50000 runes
const maxBodyBytes = 1 * 1024 * 1024

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
	callers handlers.CallerResolver
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service, callers handlers.CallerResolver) *CreateHandler {
	return &CreateHandler{
		service: service,
		callers: callers,
	}
}

// HandleCreate handles POST /post
// Body: {"title": "...", "contents": "..."}
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req posts.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w, err)
		return
	}

	caller, err := handlers.ResolveCaller(r, h.callers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), caller, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
		return
	}
	writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
}
