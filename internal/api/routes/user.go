package routes

import (
	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers/user"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/users"
)

// RegisterUserRoutes registers the /user endpoints
func RegisterUserRoutes(r chi.Router, service users.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	registerHandler := user.NewRegisterHandler(service)
	getHandler := user.NewGetHandler(service)

	r.Route("/user", func(r chi.Router) {
		r.With(authMiddleware.RequireAuth).Post("/", registerHandler.HandleRegister)
		r.With(authMiddleware.RequireAuth).Get("/me", getHandler.HandleGetMe)
		r.Get("/{username}", getHandler.HandleGetByUsername)
	})
}
