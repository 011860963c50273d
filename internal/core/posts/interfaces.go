package posts

import (
	"context"

	"Inkwell/internal/core/users"
)

// Service defines the business logic interface for posts and their likes.
// Operations acting on behalf of a user take the resolved caller explicitly.
type Service interface {
	ListPosts(ctx context.Context, page PageRequest) (*PostPage, error)
	SearchByTitle(ctx context.Context, title string, page PageRequest) (*PostPage, error)
	SearchByUsername(ctx context.Context, username string, page PageRequest) (*PostPage, error)
	GetPost(ctx context.Context, pid int64) (*Post, error)

	CreatePost(ctx context.Context, caller *users.User, req CreatePostRequest) (*Post, error)

	// UpdatePost overwrites title and contents. Only the owner may update.
	UpdatePost(ctx context.Context, caller *users.User, req UpdatePostRequest) (*Post, error)

	// DeletePost removes a post owned by caller and returns its pid
	DeletePost(ctx context.Context, caller *users.User, pid int64) (int64, error)

	// DeletePosts removes every listed post or none of them.
	// Returns the number of distinct ids deleted.
	DeletePosts(ctx context.Context, pids []int64) (int, error)

	// GetLike returns the user's reaction, or nil if there is none
	GetLike(ctx context.Context, pid, uid int64) (*bool, error)

	// SetLike records a like (true) or dislike (false), creating or
	// overwriting the caller's single reaction to the post.
	SetLike(ctx context.Context, caller *users.User, pid int64, likes bool) (*LikeResult, error)

	// DeleteLike removes the caller's reaction. Removing a missing reaction succeeds.
	DeleteLike(ctx context.Context, caller *users.User, pid int64) (bool, error)

	CountLikes(ctx context.Context, pid int64) (*LikeCounts, error)
	ListLikedBy(ctx context.Context, caller *users.User) ([]*PostLike, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a post and fills in PID and timestamps
	Create(ctx context.Context, post *Post) error

	// GetByPID returns ErrNotFound if the post does not exist
	GetByPID(ctx context.Context, pid int64) (*Post, error)

	// Update persists title and contents and refreshes UpdatedAt
	Update(ctx context.Context, post *Post) error

	Delete(ctx context.Context, pid int64) error

	// DeleteMany removes all pids in a single transaction
	DeleteMany(ctx context.Context, pids []int64) error

	// List returns one page of posts matching the query and the total match count
	List(ctx context.Context, query PostQuery) ([]*Post, int64, error)
}

// LikeRepository defines the data access interface for post likes
type LikeRepository interface {
	// Get returns ErrLikeNotFound when the user has not reacted to the post
	Get(ctx context.Context, pid, uid int64) (*PostLike, error)

	// Upsert inserts the reaction or updates the flag of the existing one
	// atomically. created reports whether a new row was inserted.
	Upsert(ctx context.Context, like *PostLike) (created bool, err error)

	// Delete removes the reaction; deleted is false when there was none
	Delete(ctx context.Context, pid, uid int64) (deleted bool, err error)

	CountByPost(ctx context.Context, pid int64, likes bool) (int64, error)
	ListByUser(ctx context.Context, uid int64) ([]*PostLike, error)
}
