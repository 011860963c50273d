package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/categories"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// Dependencies holds everything the HTTP surface needs
type Dependencies struct {
	PostService        posts.Service
	CategoryService    categories.Service
	UserService        users.Service
	Auth               *middleware.JWTAuthMiddleware
	AdminToken         string
	CorsAllowedOrigins []string
	RateLimitPerMinute int
	AccessLog          bool
}

// NewRouter builds the chi router with the shared middleware stack and every route group
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if deps.AccessLog {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   deps.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)

	if deps.RateLimitPerMinute > 0 {
		r.Use(middleware.NewRateLimiter(deps.RateLimitPerMinute, time.Minute).Middleware)
	}

	adminOnly := middleware.RequireAdminToken(deps.AdminToken)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	RegisterPostRoutes(r, deps.PostService, deps.UserService, deps.Auth, adminOnly)
	RegisterCategoryRoutes(r, deps.CategoryService, adminOnly)
	RegisterUserRoutes(r, deps.UserService, deps.Auth)

	return r
}
