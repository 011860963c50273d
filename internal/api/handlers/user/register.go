package user

import (
	"encoding/json"
	"net/http"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/users"
)

// RegisterHandler creates accounts for users arriving from the external
// sign-in flow
type RegisterHandler struct {
	service users.Service
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(service users.Service) *RegisterHandler {
	return &RegisterHandler{service: service}
}

// HandleRegister handles POST /user
// Body: {"username": "...", "email": "..."}
// The provider always comes from the bearer token subject; a provider in the
// body is ignored so nobody can claim another person's identity.
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req users.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	provider := middleware.GetProvider(r)
	if provider == "" {
		handleServiceError(w, users.ErrUnauthenticated)
		return
	}
	req.Provider = provider

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}
