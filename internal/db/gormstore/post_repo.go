package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"Inkwell/internal/core/posts"
)

type gormPostRepo struct {
	db *gorm.DB
}

// NewPostRepository creates a gorm-backed post repository
func NewPostRepository(db *gorm.DB) posts.Repository {
	return &gormPostRepo{db: db}
}

var sortColumns = map[string]string{
	posts.SortPID:       "p.pid",
	posts.SortTitle:     "p.title",
	posts.SortCreatedAt: "p.created_at",
	posts.SortUpdatedAt: "p.updated_at",
}

const postRowColumns = "p.pid, p.uid, u.username, p.title, p.contents, p.created_at, p.updated_at"

func (r *gormPostRepo) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("posts AS p").Joins("JOIN users AS u ON u.uid = p.uid")
}

func (r *gormPostRepo) Create(ctx context.Context, post *posts.Post) error {
	model := postModel{UID: post.UID, Title: post.Title, Contents: post.Contents}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	post.PID = model.PID
	post.CreatedAt = model.CreatedAt
	post.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *gormPostRepo) GetByPID(ctx context.Context, pid int64) (*posts.Post, error) {
	var row postRow
	result := r.joined(ctx).Select(postRowColumns).Where("p.pid = ?", pid).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, posts.ErrNotFound
	}
	return row.toDomain(), nil
}

func (r *gormPostRepo) Update(ctx context.Context, post *posts.Post) error {
	now := r.db.NowFunc()
	result := r.db.WithContext(ctx).Model(&postModel{}).Where("pid = ?", post.PID).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"contents":   post.Contents,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return posts.ErrNotFound
	}
	post.UpdatedAt = now
	return nil
}

// Delete removes a post and its likes
func (r *gormPostRepo) Delete(ctx context.Context, pid int64) error {
	return r.DeleteMany(ctx, []int64{pid})
}

// DeleteMany removes the posts and their likes in one transaction. A missing
// pid rolls back the whole batch.
func (r *gormPostRepo) DeleteMany(ctx context.Context, pids []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pid IN ?", pids).Delete(&postLikeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes: %w", err)
		}

		result := tx.Where("pid IN ?", pids).Delete(&postModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete posts: %w", result.Error)
		}
		if result.RowsAffected != int64(len(pids)) {
			return fmt.Errorf("deleted %d of %d posts: %w", result.RowsAffected, len(pids), posts.ErrNotFound)
		}
		return nil
	})
}

func (r *gormPostRepo) List(ctx context.Context, q posts.PostQuery) ([]*posts.Post, int64, error) {
	query := r.joined(ctx)
	if q.TitleContains != "" {
		query = query.Where(`p.title LIKE ? ESCAPE '\'`, posts.ContainsPattern(q.TitleContains))
	}
	if q.UsernameContains != "" {
		query = query.Where(`u.username LIKE ? ESCAPE '\'`, posts.ContainsPattern(q.UsernameContains))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
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

	var rows []postRow
	err := query.Select(postRowColumns).
		Order(fmt.Sprintf("%s %s, p.pid %s", column, direction, direction)).
		Limit(q.Page.Size).
		Offset(q.Page.Offset()).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	result := make([]*posts.Post, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].toDomain())
	}
	return result, total, nil
}

