package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers/category"
	"Inkwell/internal/core/categories"
)

// RegisterCategoryRoutes registers the /category endpoints. Mutations are admin only.
func RegisterCategoryRoutes(r chi.Router, service categories.Service, adminOnly func(http.Handler) http.Handler) {
	h := category.NewHandler(service)

	r.Route("/category", func(r chi.Router) {
		r.Get("/", h.HandleListGrouped)
		r.Get("/{parent}", h.HandleListByParent)
		r.With(adminOnly).Post("/", h.HandleCreate)
		r.With(adminOnly).Delete("/{id}", h.HandleDelete)
	})
}
