package post

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// LikeHandler serves the like/dislike endpoints
type LikeHandler struct {
	service posts.Service
	callers handlers.CallerResolver
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service, callers handlers.CallerResolver) *LikeHandler {
	return &LikeHandler{
		service: service,
		callers: callers,
	}
}

// HandleGetLike handles GET /post/like?pid&uid and responds true, false or null
func (h *LikeHandler) HandleGetLike(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", r.URL.Query().Get("pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	uid, err := handlers.ParseInt64("uid", r.URL.Query().Get("uid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	state, err := h.service.GetLike(r.Context(), pid, uid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// HandleSetLike handles POST /post/like?pid&likes[&uid]
func (h *LikeHandler) HandleSetLike(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", r.URL.Query().Get("pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	likes, err := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("likes")))
	if err != nil {
		handleServiceError(w, posts.NewValidationError("likes", "must be true or false"))
		return
	}

	caller, err := h.caller(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	result, err := h.service.SetLike(r.Context(), caller, pid, likes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result.Permit)
}

// HandleDeleteLike handles DELETE /post/like?pid[&uid]
func (h *LikeHandler) HandleDeleteLike(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", r.URL.Query().Get("pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	caller, err := h.caller(r)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	removed, err := h.service.DeleteLike(r.Context(), caller, pid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, removed)
}

// HandleCountLikes handles GET /post/{pid}/likes
func (h *LikeHandler) HandleCountLikes(w http.ResponseWriter, r *http.Request) {
	pid, err := handlers.ParseInt64("pid", chi.URLParam(r, "pid"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	counts, err := h.service.CountLikes(r.Context(), pid)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// HandleListMine handles GET /post/like/mine
func (h *LikeHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	caller, err := handlers.ResolveCaller(r, h.callers)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	liked, err := h.service.ListLikedBy(r.Context(), caller)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, liked)
}

// caller resolves the token holder and, when the request names a uid,
// requires it to be the same user
func (h *LikeHandler) caller(r *http.Request) (*users.User, error) {
	caller, err := handlers.ResolveCaller(r, h.callers)
	if err != nil {
		return nil, err
	}

	if raw := r.URL.Query().Get("uid"); raw != "" {
		uid, err := handlers.ParseInt64("uid", raw)
		if err != nil {
			return nil, err
		}
		if uid != caller.UID {
			return nil, posts.ErrNotAuthorized
		}
	}
	return caller, nil
}
