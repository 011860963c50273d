package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts a new user and fills in UID and CreatedAt.
	// Returns ErrUsernameTaken or ErrProviderTaken on unique violations.
	Create(ctx context.Context, user *User) (*User, error)
	GetByUID(ctx context.Context, uid int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByProvider(ctx context.Context, provider string) (*User, error)
}

// Service defines the interface for user business logic
type Service interface {
	Register(ctx context.Context, req RegisterUserRequest) (*User, error)
	GetByUID(ctx context.Context, uid int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByProvider(ctx context.Context, provider string) (*User, error)

	// ResolveCaller maps the authenticated provider identifier to a user handle.
	// Returns ErrUnauthenticated when the provider is empty or unknown.
	ResolveCaller(ctx context.Context, provider string) (*User, error)
}
