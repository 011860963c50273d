package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"Inkwell/internal/core/posts"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL post like repository
func NewLikeRepository(db *sql.DB) posts.LikeRepository {
	return &postgresLikeRepo{db: db}
}

// Get retrieves a user's reaction to a post
func (r *postgresLikeRepo) Get(ctx context.Context, pid, uid int64) (*posts.PostLike, error) {
	query := `SELECT pid, uid, likes, created_at, updated_at FROM post_likes WHERE pid = $1 AND uid = $2`

	like := &posts.PostLike{}
	err := r.db.QueryRowContext(ctx, query, pid, uid).
		Scan(&like.PID, &like.UID, &like.Likes, &like.CreatedAt, &like.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, posts.ErrLikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return like, nil
}

// Upsert inserts or flips the reaction in one statement.
// xmax is zero only for freshly inserted tuples.
func (r *postgresLikeRepo) Upsert(ctx context.Context, like *posts.PostLike) (bool, error) {
	query := `
		INSERT INTO post_likes (pid, uid, likes)
		VALUES ($1, $2, $3)
		ON CONFLICT (pid, uid) DO UPDATE
			SET likes = EXCLUDED.likes, updated_at = NOW()
		RETURNING created_at, updated_at, (xmax = 0) AS inserted`

	var inserted bool
	err := r.db.QueryRowContext(ctx, query, like.PID, like.UID, like.Likes).
		Scan(&like.CreatedAt, &like.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert like: %w", err)
	}
	return inserted, nil
}

// Delete removes a reaction and reports whether one existed
func (r *postgresLikeRepo) Delete(ctx context.Context, pid, uid int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_likes WHERE pid = $1 AND uid = $2`, pid, uid)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return rowsAffected > 0, nil
}

// CountByPost counts likes (likes=true) or dislikes (likes=false) on a post
func (r *postgresLikeRepo) CountByPost(ctx context.Context, pid int64, likes bool) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE pid = $1 AND likes = $2`, pid, likes).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

// ListByUser returns a user's reactions, newest first
func (r *postgresLikeRepo) ListByUser(ctx context.Context, uid int64) ([]*posts.PostLike, error) {
	query := `
		SELECT pid, uid, likes, created_at, updated_at
		FROM post_likes
		WHERE uid = $1
		ORDER BY updated_at DESC, pid DESC`

	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := []*posts.PostLike{}
	for rows.Next() {
		like := &posts.PostLike{}
		if err := rows.Scan(&like.PID, &like.UID, &like.Likes, &like.CreatedAt, &like.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		result = append(result, like)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return result, nil
}
