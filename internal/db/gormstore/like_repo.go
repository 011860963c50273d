package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Inkwell/internal/core/posts"
)

type gormLikeRepo struct {
	db *gorm.DB
}

// NewLikeRepository creates a gorm-backed post like repository
func NewLikeRepository(db *gorm.DB) posts.LikeRepository {
	return &gormLikeRepo{db: db}
}

func (r *gormLikeRepo) Get(ctx context.Context, pid, uid int64) (*posts.PostLike, error) {
	var model postLikeModel
	err := r.db.WithContext(ctx).Where("pid = ? AND uid = ?", pid, uid).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, posts.ErrLikeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}
	return model.toDomain(), nil
}

// Upsert writes the reaction with INSERT ... ON CONFLICT so racing writers
// leave a single row. Postgres reports whether the row was inserted through
// xmax; SQLite connections are serialized, so a read in the same
// transaction answers that instead.
func (r *gormLikeRepo) Upsert(ctx context.Context, like *posts.PostLike) (bool, error) {
	if r.db.Dialector.Name() == DialectPostgres {
		return r.upsertReturning(ctx, like)
	}

	var created bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		model := postLikeModel{PID: like.PID, UID: like.UID, Likes: like.Likes, CreatedAt: now, UpdatedAt: now}

		var existing postLikeModel
		err := tx.Where("pid = ? AND uid = ?", like.PID, like.UID).Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			created = true
		case err != nil:
			return err
		default:
			model.CreatedAt = existing.CreatedAt
		}

		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pid"}, {Name: "uid"}},
			DoUpdates: clause.AssignmentColumns([]string{"likes", "updated_at"}),
		}).Create(&model).Error
		if err != nil {
			return err
		}

		like.CreatedAt = model.CreatedAt
		like.UpdatedAt = model.UpdatedAt
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to upsert like: %w", err)
	}
	return created, nil
}

func (r *gormLikeRepo) upsertReturning(ctx context.Context, like *posts.PostLike) (bool, error) {
	var row struct {
		CreatedAt time.Time
		UpdatedAt time.Time
		Inserted  bool
	}

	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO post_likes (pid, uid, likes, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
		ON CONFLICT (pid, uid) DO UPDATE
		SET likes = EXCLUDED.likes, updated_at = NOW()
		RETURNING created_at, updated_at, (xmax = 0) AS inserted`,
		like.PID, like.UID, like.Likes,
	).Scan(&row).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert like: %w", err)
	}

	like.CreatedAt = row.CreatedAt
	like.UpdatedAt = row.UpdatedAt
	return row.Inserted, nil
}

func (r *gormLikeRepo) Delete(ctx context.Context, pid, uid int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("pid = ? AND uid = ?", pid, uid).Delete(&postLikeModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete like: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormLikeRepo) CountByPost(ctx context.Context, pid int64, likes bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&postLikeModel{}).
		Where("pid = ? AND likes = ?", pid, likes).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *gormLikeRepo) ListByUser(ctx context.Context, uid int64) ([]*posts.PostLike, error) {
	var models []postLikeModel
	err := r.db.WithContext(ctx).Where("uid = ?", uid).
		Order("updated_at DESC").Order("pid DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	result := make([]*posts.PostLike, 0, len(models))
	for i := range models {
		result = append(result, models[i].toDomain())
	}
	return result, nil
}
