package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Inkwell/internal/api/handlers/post"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// RegisterPostRoutes registers the /post endpoints on the router.
// Reads are public, writes need a bearer token and the batch delete needs
// the admin token.
func RegisterPostRoutes(r chi.Router, service posts.Service, userService users.Service,
	authMiddleware *middleware.JWTAuthMiddleware, adminOnly func(http.Handler) http.Handler,
) {
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service, userService)
	updateHandler := post.NewUpdateHandler(service, userService)
	deleteHandler := post.NewDeleteHandler(service, userService)
	likeHandler := post.NewLikeHandler(service, userService)

	r.Route("/post", func(r chi.Router) {
		r.Get("/", listHandler.HandleList)
		r.With(authMiddleware.RequireAuth).Post("/", createHandler.HandleCreate)
		r.With(adminOnly).Delete("/", deleteHandler.HandleDeleteBatch)

		r.Get("/title/{title}", listHandler.HandleSearchByTitle)
		r.Get("/username/{username}", listHandler.HandleSearchByUsername)

		r.Get("/like", likeHandler.HandleGetLike)
		r.With(authMiddleware.RequireAuth).Post("/like", likeHandler.HandleSetLike)
		r.With(authMiddleware.RequireAuth).Delete("/like", likeHandler.HandleDeleteLike)
		r.With(authMiddleware.RequireAuth).Get("/like/mine", likeHandler.HandleListMine)

		r.Get("/{pid}", getHandler.HandleGet)
		r.With(authMiddleware.RequireAuth).Put("/{pid}", updateHandler.HandleUpdate)
		r.With(authMiddleware.RequireAuth).Delete("/{pid}", deleteHandler.HandleDelete)
		r.Get("/{pid}/likes", likeHandler.HandleCountLikes)
	})
}
