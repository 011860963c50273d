package gormstore

import (
	"time"

	"Inkwell/internal/core/categories"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

type userModel struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	Username  string    `gorm:"column:username;size:32;not null;uniqueIndex:users_username_key"`
	Email     string    `gorm:"column:email;size:255;not null"`
	Provider  string    `gorm:"column:provider;size:255;not null;uniqueIndex:users_provider_key"`
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement"`
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *users.User {
	return &users.User{
		UID:       m.UID,
		Username:  m.Username,
		Email:     m.Email,
		Provider:  m.Provider,
		CreatedAt: m.CreatedAt,
	}
}

type postModel struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Title     string    `gorm:"column:title;size:200;not null"`
	Contents  string    `gorm:"column:contents;type:text;not null"`
	PID       int64     `gorm:"column:pid;primaryKey;autoIncrement"`
	UID       int64     `gorm:"column:uid;not null;index:idx_posts_uid"`
}

func (postModel) TableName() string { return "posts" }

// postRow is a post joined with its owner's username
type postRow struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	Title     string    `gorm:"column:title"`
	Contents  string    `gorm:"column:contents"`
	Username  string    `gorm:"column:username"`
	PID       int64     `gorm:"column:pid"`
	UID       int64     `gorm:"column:uid"`
}

func (r *postRow) toDomain() *posts.Post {
	return &posts.Post{
		PID:       r.PID,
		UID:       r.UID,
		Username:  r.Username,
		Title:     r.Title,
		Contents:  r.Contents,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type postLikeModel struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
	PID       int64     `gorm:"column:pid;primaryKey;autoIncrement:false"`
	UID       int64     `gorm:"column:uid;primaryKey;autoIncrement:false;index:idx_post_likes_uid"`
	Likes     bool      `gorm:"column:likes;not null"`
}

func (postLikeModel) TableName() string { return "post_likes" }

func (m *postLikeModel) toDomain() *posts.PostLike {
	return &posts.PostLike{
		PID:       m.PID,
		UID:       m.UID,
		Likes:     m.Likes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type categoryModel struct {
	CreatedAt time.Time `gorm:"column:created_at"`
	Name      string    `gorm:"column:name;size:64;not null;uniqueIndex:categories_parent_name_key,priority:2"`
	Parent    string    `gorm:"column:parent;size:64;not null;uniqueIndex:categories_parent_name_key,priority:1"`
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
}

func (categoryModel) TableName() string { return "categories" }

func (m *categoryModel) toDomain() *categories.Category {
	return &categories.Category{
		ID:        m.ID,
		Name:      m.Name,
		Parent:    m.Parent,
		CreatedAt: m.CreatedAt,
	}
}
