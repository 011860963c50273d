package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

// CallerResolver maps an authenticated provider to a user
type CallerResolver interface {
	ResolveCaller(ctx context.Context, provider string) (*users.User, error)
}

// ResolveCaller returns the user behind the request's bearer token.
// Anonymous requests and unknown providers yield users.ErrUnauthenticated.
func ResolveCaller(r *http.Request, resolver CallerResolver) (*users.User, error) {
	return resolver.ResolveCaller(r.Context(), middleware.GetProvider(r))
}

// ParsePageRequest reads page, size and sort=field[,asc|desc] from the query string.
// Missing values fall back to the listing defaults.
func ParsePageRequest(r *http.Request) (posts.PageRequest, error) {
	page := posts.DefaultPageRequest()
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, posts.NewValidationError("page", "must be an integer")
		}
		page.Page = n
	}

	if raw := strings.TrimSpace(query.Get("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, posts.NewValidationError("size", "must be an integer")
		}
		page.Size = n
	}

	if raw := strings.TrimSpace(query.Get("sort")); raw != "" {
		field, desc, err := posts.ParseSort(raw)
		if err != nil {
			return page, err
		}
		page.Sort = field
		page.Desc = desc
	}

	return page, nil
}

// ParseInt64 parses a required positive integer parameter
func ParseInt64(name, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, posts.NewValidationError(name, "is required")
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, posts.NewValidationError(name, "must be a positive integer")
	}
	return n, nil
}
