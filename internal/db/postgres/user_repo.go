package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"Inkwell/internal/core/users"
)

// uniqueViolation is the SQLSTATE Postgres reports for unique constraint failures
const uniqueViolation = "23505"

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	query := `
		INSERT INTO users (username, email, provider)
		VALUES ($1, $2, $3)
		RETURNING uid, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.Provider).
		Scan(&user.UID, &user.CreatedAt)
	if err != nil {
		switch constraintViolated(err) {
		case "users_username_key":
			return nil, users.ErrUsernameTaken
		case "users_provider_key":
			return nil, users.ErrProviderTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByUID retrieves a user by primary key
func (r *postgresUserRepo) GetByUID(ctx context.Context, uid int64) (*users.User, error) {
	return r.getOne(ctx, `SELECT uid, username, email, provider, created_at FROM users WHERE uid = $1`, uid)
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.getOne(ctx, `SELECT uid, username, email, provider, created_at FROM users WHERE username = $1`, username)
}

// GetByProvider retrieves a user by the identifier issued by the auth provider
func (r *postgresUserRepo) GetByProvider(ctx context.Context, provider string) (*users.User, error) {
	return r.getOne(ctx, `SELECT uid, username, email, provider, created_at FROM users WHERE provider = $1`, provider)
}

func (r *postgresUserRepo) getOne(ctx context.Context, query string, arg interface{}) (*users.User, error) {
	user := &users.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.UID, &user.Username, &user.Email, &user.Provider, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// constraintViolated returns the constraint name of a unique violation, or ""
func constraintViolated(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
