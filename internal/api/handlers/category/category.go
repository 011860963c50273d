package category

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/core/categories"
)

// Handler serves category listing and administration
type Handler struct {
	service categories.Service
}

// NewHandler creates a new category handler
func NewHandler(service categories.Service) *Handler {
	return &Handler{service: service}
}

// HandleListGrouped handles GET /category
func (h *Handler) HandleListGrouped(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListAllGrouped(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// HandleListByParent handles GET /category/{parent}
func (h *Handler) HandleListByParent(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListByParent(r.Context(), chi.URLParam(r, "parent"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleCreate handles POST /category
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)

	var req categories.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	category, err := h.service.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// HandleDelete handles DELETE /category/{id} and responds with the deleted id
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "id must be a positive integer")
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
