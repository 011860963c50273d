package categories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

const maxNameLength = 64

type categoryService struct {
	repo   Repository
	logger *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryService{repo: repo, logger: logger}
}

func (s *categoryService) ListAllGrouped(ctx context.Context) ([]*CategoryGroup, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return GroupByParent(rows), nil
}

func (s *categoryService) ListByParent(ctx context.Context, parent string) ([]*Category, error) {
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return nil, NewValidationError("parent", "is required")
	}

	rows, err := s.repo.ListByParent(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for parent %q: %w", parent, err)
	}
	if rows == nil {
		rows = []*Category{}
	}
	return rows, nil
}

func (s *categoryService) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	name := strings.TrimSpace(req.Name)
	parent := strings.TrimSpace(req.Parent)

	if name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if parent == "" {
		return nil, NewValidationError("parent", "is required")
	}
	if len(name) > maxNameLength || len(parent) > maxNameLength {
		return nil, NewValidationError("name", fmt.Sprintf("name and parent must be at most %d bytes", maxNameLength))
	}

	category, err := s.repo.Create(ctx, &Category{Name: name, Parent: parent})
	if err != nil {
		if IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created", "id", category.ID, "name", name, "parent", parent)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) (int64, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", "id", id)
	return id, nil
}
