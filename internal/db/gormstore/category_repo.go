package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"Inkwell/internal/core/categories"
)

type gormCategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository creates a gorm-backed category repository
func NewCategoryRepository(db *gorm.DB) categories.Repository {
	return &gormCategoryRepo{db: db}
}

func (r *gormCategoryRepo) Create(ctx context.Context, category *categories.Category) (*categories.Category, error) {
	model := categoryModel{Name: category.Name, Parent: category.Parent}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, categories.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return model.toDomain(), nil
}

func (r *gormCategoryRepo) GetByID(ctx context.Context, id int64) (*categories.Category, error) {
	var model categoryModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, categories.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return model.toDomain(), nil
}

func (r *gormCategoryRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&categoryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return categories.ErrCategoryNotFound
	}
	return nil
}

func (r *gormCategoryRepo) List(ctx context.Context) ([]*categories.Category, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *gormCategoryRepo) ListByParent(ctx context.Context, parent string) ([]*categories.Category, error) {
	return r.find(r.db.WithContext(ctx).Where("parent = ?", parent))
}

func (r *gormCategoryRepo) find(query *gorm.DB) ([]*categories.Category, error) {
	var models []categoryModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	result := make([]*categories.Category, 0, len(models))
	for i := range models {
		result = append(result, models[i].toDomain())
	}
	return result, nil
}
