package categories

import "context"

// Repository defines data access for categories
type Repository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	Delete(ctx context.Context, id int64) error

	// List returns every category ordered by id
	List(ctx context.Context) ([]*Category, error)

	// ListByParent returns the categories under parent ordered by id
	ListByParent(ctx context.Context, parent string) ([]*Category, error)
}

// Service defines category business logic
type Service interface {
	ListAllGrouped(ctx context.Context) ([]*CategoryGroup, error)
	ListByParent(ctx context.Context, parent string) ([]*Category, error)
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
