package post

import (
	"errors"
	"log"
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	handlers.WriteError(w, statusCode, errorType, message)
}

// writeJSON writes a successful JSON response
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	handlers.WriteJSON(w, statusCode, v)
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrUnauthenticated), errors.Is(err, users.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")

	case errors.Is(err, posts.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, "NotAuthorized", "You are not authorized to modify this post")

	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, "PostNotFound", err.Error())

	case posts.IsConflict(err):
		writeError(w, http.StatusConflict, "Conflict", "The request conflicted with a concurrent write")

	default:
		// Don't leak internal error details to clients
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
