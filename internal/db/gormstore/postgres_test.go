package gormstore

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"Inkwell/internal/core/posts"
	"Inkwell/internal/db/migrations"
)

// setupPostgresDB opens TEST_DATABASE_URL through gorm with the goose schema.
// Tests are skipped when no database is configured.
func setupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping gorm postgres tests")
	}

	db, err := Open(DialectPostgres, dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(sqlDB, "."))
	require.NoError(t, db.Exec(`TRUNCATE post_likes, posts, categories, users RESTART IDENTITY CASCADE`).Error)

	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestLikeRepo_Postgres_ConcurrentWritersKeepOneRow(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	author := createUser(t, db, "writer")
	post := createPosts(t, db, author.UID, 1)[0]

	var (
		wg       sync.WaitGroup
		inserted atomic.Int32
		start    = make(chan struct{})
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(likes bool) {
			defer wg.Done()
			<-start
			created, err := repo.Upsert(ctx, &posts.PostLike{PID: post.PID, UID: author.UID, Likes: likes})
			assert.NoError(t, err)
			if created {
				inserted.Add(1)
			}
		}(i%2 == 0)
	}
	close(start)
	wg.Wait()

	var rows int64
	require.NoError(t, db.Model(&postLikeModel{}).Where("pid = ? AND uid = ?", post.PID, author.UID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
	assert.Equal(t, int32(1), inserted.Load(), "exactly one writer should insert the row")

	like, err := repo.Get(ctx, post.PID, author.UID)
	require.NoError(t, err)
	assert.False(t, like.CreatedAt.IsZero())
}

func TestPostRepo_Postgres_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := setupPostgresDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	underscored := createUser(t, db, "a_b")
	lookalike := createUser(t, db, "axb")
	require.NoError(t, repo.Create(ctx, &posts.Post{UID: underscored.UID, Title: "100% sure"}))
	require.NoError(t, repo.Create(ctx, &posts.Post{UID: lookalike.UID, Title: "fairly sure"}))

	page := posts.DefaultPageRequest()

	_, total, err := repo.List(ctx, posts.PostQuery{UsernameContains: "a_b", Page: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.List(ctx, posts.PostQuery{TitleContains: "%", Page: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
