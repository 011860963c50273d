package posts

import (
	"time"
)

// Post represents a blog post.
// UID is the owning user and never changes after creation; Username is the
// owner's username joined in on reads for display.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	Title     string    `json:"title" db:"title"`
	Contents  string    `json:"contents" db:"contents"`
	Username  string    `json:"username" db:"username"`
	PID       int64     `json:"pid" db:"pid"`
	UID       int64     `json:"uid" db:"uid"`
}

// CreatePostRequest represents input for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
}

// UpdatePostRequest represents input for overwriting a post's mutable fields
type UpdatePostRequest struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
	PID      int64  `json:"pid"`
}

// DeletePostsRequest is the body of a batch delete
type DeletePostsRequest struct {
	IDs []int64 `json:"ids"`
}
