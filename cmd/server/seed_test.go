package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Inkwell/internal/core/categories"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/db/gormstore"
)

func TestSeed_IsRepeatable(t *testing.T) {
	db, err := gormstore.Open(gormstore.DialectSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, gormstore.AutoMigrate(db))
	t.Cleanup(func() { _ = gormstore.Close(db) })

	st := &store{
		users:      gormstore.NewUserRepository(db),
		posts:      gormstore.NewPostRepository(db),
		likes:      gormstore.NewLikeRepository(db),
		categories: gormstore.NewCategoryRepository(db),
	}
	logger := slog.Default()
	userService, postService, categoryService := st.services(logger)
	ctx := context.Background()

	require.NoError(t, seed(ctx, logger, userService, postService, categoryService, 2))
	require.NoError(t, seed(ctx, logger, userService, postService, categoryService, 2))

	page, err := postService.ListPosts(ctx, posts.DefaultPageRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(2*2*len(seedUsernames)), page.TotalElements)

	groups, err := categoryService.ListAllGrouped(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*categories.CategoryGroup{
		{Parent: "language", Category: []string{"go", "sql"}},
		{Parent: "topic", Category: []string{"testing", "databases", "http"}},
	}, groups)

	user, err := userService.GetByProvider(ctx, "seed_"+seedUsernames[0])
	require.NoError(t, err)
	assert.Equal(t, seedUsernames[0], user.Username)
}
