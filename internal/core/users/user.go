package users

import (
	"time"
)

// User represents an account known to the blog.
// Accounts are created by the external registration flow; provider is the
// identifier handed out by the upstream auth provider (e.g. "google_1234").
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Provider  string    `json:"provider" db:"provider"`
	UID       int64     `json:"uid" db:"uid"`
}

// RegisterUserRequest represents the input for registering a new user
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
}
