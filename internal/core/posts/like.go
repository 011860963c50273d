package posts

import "time"

// PostLike is a user's reaction to a post. There is at most one per (PID, UID);
// Likes is true for a like and false for a dislike.
type PostLike struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
	PID       int64     `json:"pid" db:"pid"`
	UID       int64     `json:"uid" db:"uid"`
	Likes     bool      `json:"likes" db:"likes"`
}

// LikeResult reports the outcome of SetLike.
// Created is true when the reaction did not exist before.
type LikeResult struct {
	Permit  bool `json:"permit"`
	Created bool `json:"created"`
	Likes   bool `json:"likes"`
}

// LikeCounts is the per-post tally of reactions
type LikeCounts struct {
	PID      int64 `json:"pid"`
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}
