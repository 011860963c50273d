package category

import (
	"log"
	"net/http"

	"Inkwell/internal/api/handlers"
	"Inkwell/internal/core/categories"
)

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	handlers.WriteError(w, statusCode, errorType, message)
}

// writeJSON writes a successful JSON response
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	handlers.WriteJSON(w, statusCode, v)
}

// handleServiceError maps category service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case categories.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	case categories.IsNotFound(err):
		writeError(w, http.StatusNotFound, "CategoryNotFound", "Category not found")

	case categories.IsConflict(err):
		writeError(w, http.StatusConflict, "CategoryExists", "Category already exists under this parent")

	default:
		log.Printf("Unexpected error in category handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}
