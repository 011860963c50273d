package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/users"
)

// profile is the public view of a user; email and provider stay private
type profile struct {
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username"`
	UID       int64     `json:"uid"`
}

// GetHandler serves user lookups
type GetHandler struct {
	service users.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service users.Service) *GetHandler {
	return &GetHandler{service: service}
}

// HandleGetMe handles GET /user/me and returns the full record of the caller
func (h *GetHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := handlers.ResolveCaller(r, h.service)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleGetByUsername handles GET /user/{username}
func (h *GetHandler) HandleGetByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile{
		UID:       user.UID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
