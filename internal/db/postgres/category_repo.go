package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"Inkwell/internal/core/categories"
)

type postgresCategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *sql.DB) categories.Repository {
	return &postgresCategoryRepo{db: db}
}

func (r *postgresCategoryRepo) Create(ctx context.Context, category *categories.Category) (*categories.Category, error) {
	query := `
		INSERT INTO categories (name, parent)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, category.Name, category.Parent).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if constraintViolated(err) == "categories_parent_name_key" {
			return nil, categories.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepo) GetByID(ctx context.Context, id int64) (*categories.Category, error) {
	category := &categories.Category{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, parent, created_at FROM categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.Parent, &category.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, categories.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rowsAffected == 0 {
		return categories.ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepo) List(ctx context.Context) ([]*categories.Category, error) {
	return r.query(ctx, `SELECT id, name, parent, created_at FROM categories ORDER BY id`)
}

func (r *postgresCategoryRepo) ListByParent(ctx context.Context, parent string) ([]*categories.Category, error) {
	return r.query(ctx, `SELECT id, name, parent, created_at FROM categories WHERE parent = $1 ORDER BY id`, parent)
}

func (r *postgresCategoryRepo) query(ctx context.Context, query string, args ...interface{}) ([]*categories.Category, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := []*categories.Category{}
	for rows.Next() {
		category := &categories.Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Parent, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return result, nil
}
