package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"Inkwell/internal/core/posts"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// sortColumns maps public sort fields to columns. Only whitelisted values
// ever reach the ORDER BY clause.
var sortColumns = map[string]string{
	posts.SortPID:       "p.pid",
	posts.SortTitle:     "p.title",
	posts.SortCreatedAt: "p.created_at",
	posts.SortUpdatedAt: "p.updated_at",
}

const postColumns = `p.pid, p.uid, u.username, p.title, p.contents, p.created_at, p.updated_at`

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO posts (uid, title, contents)
		VALUES ($1, $2, $3)
		RETURNING pid, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, post.UID, post.Title, post.Contents).
		Scan(&post.PID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByPID retrieves a post with its author's username
func (r *postgresPostRepo) GetByPID(ctx context.Context, pid int64) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts p JOIN users u ON u.uid = p.uid WHERE p.pid = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, pid))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// Update overwrites title and contents
func (r *postgresPostRepo) Update(ctx context.Context, post *posts.Post) error {
	query := `
		UPDATE posts SET title = $2, contents = $3, updated_at = NOW()
		WHERE pid = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, post.PID, post.Title, post.Contents).Scan(&post.UpdatedAt)
	if err == sql.ErrNoRows {
		return posts.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

// Delete removes a post. Its likes go with it via ON DELETE CASCADE.
func (r *postgresPostRepo) Delete(ctx context.Context, pid int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE pid = $1`, pid)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

// DeleteMany removes all pids or none of them
func (r *postgresPostRepo) DeleteMany(ctx context.Context, pids []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", slog.String("error", rollbackErr.Error()))
		}
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE pid = ANY($1)`, pq.Array(pids))
	if err != nil {
		return fmt.Errorf("failed to delete posts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected != int64(len(pids)) {
		return fmt.Errorf("deleted %d of %d posts: %w", rowsAffected, len(pids), posts.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns one page of posts and the total number of matches
func (r *postgresPostRepo) List(ctx context.Context, q posts.PostQuery) ([]*posts.Post, int64, error) {
	var (
		where []string
		args  []interface{}
	)
	if q.TitleContains != "" {
		args = append(args, posts.ContainsPattern(q.TitleContains))
		where = append(where, fmt.Sprintf(`p.title LIKE $%d ESCAPE '\'`, len(args)))
	}
	if q.UsernameContains != "" {
		args = append(args, posts.ContainsPattern(q.UsernameContains))
		where = append(where, fmt.Sprintf(`u.username LIKE $%d ESCAPE '\'`, len(args)))
	}

	from := ` FROM posts p JOIN users u ON u.uid = p.uid`
	if len(where) > 0 {
		from += ` WHERE ` + strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	column, ok := sortColumns[q.Page.Sort]
	if !ok {
		column = sortColumns[posts.DefaultSort]
	}
	direction := "ASC"
	if q.Page.Desc {
		direction = "DESC"
	}

	args = append(args, q.Page.Size, q.Page.Offset())
	query := fmt.Sprintf(`SELECT %s%s ORDER BY %s %s, p.pid %s LIMIT $%d OFFSET $%d`,
		postColumns, from, column, direction, direction, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := []*posts.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating posts: %w", err)
	}

	return result, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	post := &posts.Post{}
	err := row.Scan(&post.PID, &post.UID, &post.Username, &post.Title, &post.Contents,
		&post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return post, nil
}
