package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *Category) (*Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func (m *mockCategoryRepository) ListByParent(ctx context.Context, parent string) ([]*Category, error) {
	args := m.Called(ctx, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Category), args.Error(1)
}

func TestCategoryService_ListAllGrouped(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo, nil)
	ctx := context.Background()

	repo.On("List", ctx).Return([]*Category{
		{ID: 1, Parent: "parent", Name: "name1"},
		{ID: 2, Parent: "parent", Name: "name2"},
	}, nil)

	result, err := service.ListAllGrouped(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*CategoryGroup{
		{Parent: "parent", Category: []string{"name1", "name2"}},
	}, result)
}

func TestGroupByParent_PreservesFirstSeenOrder(t *testing.T) {
	rows := []*Category{
		{Parent: "lang", Name: "go"},
		{Parent: "db", Name: "postgres"},
		{Parent: "lang", Name: "rust"},
		{Parent: "db", Name: "sqlite"},
		{Parent: "ops", Name: "k8s"},
	}

	groups := GroupByParent(rows)
	require.Len(t, groups, 3)
	assert.Equal(t, "lang", groups[0].Parent)
	assert.Equal(t, []string{"go", "rust"}, groups[0].Category)
	assert.Equal(t, "db", groups[1].Parent)
	assert.Equal(t, []string{"postgres", "sqlite"}, groups[1].Category)
	assert.Equal(t, "ops", groups[2].Parent)

	assert.Empty(t, GroupByParent(nil))
}

func TestCategoryService_ListByParent(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo, nil)
	ctx := context.Background()

	expected := []*Category{{ID: 3, Parent: "parent", Name: "n"}}
	repo.On("ListByParent", ctx, "parent").Return(expected, nil)

	result, err := service.ListByParent(ctx, " parent ")
	require.NoError(t, err)
	assert.Equal(t, expected, result)

	_, err = service.ListByParent(ctx, "")
	assert.True(t, IsValidationError(err))
}

func TestCategoryService_Create(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo, nil)
	ctx := context.Background()

	created := &Category{ID: 4, Name: "go", Parent: "lang"}
	repo.On("Create", ctx, &Category{Name: "go", Parent: "lang"}).Return(created, nil)

	result, err := service.Create(ctx, CreateCategoryRequest{Name: "go", Parent: "lang"})
	require.NoError(t, err)
	assert.Equal(t, created, result)

	_, err = service.Create(ctx, CreateCategoryRequest{Name: "", Parent: "lang"})
	assert.True(t, IsValidationError(err))
}

func TestCategoryService_Delete(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(1)).Return(&Category{ID: 1}, nil)
	repo.On("Delete", ctx, int64(1)).Return(nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, ErrCategoryNotFound)

	id, err := service.Delete(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	repo.AssertNumberOfCalls(t, "Delete", 1)

	_, err = service.Delete(ctx, 2)
	assert.True(t, IsNotFound(err))
}
