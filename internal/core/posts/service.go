package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"Inkwell/internal/core/users"
)

const (
	maxTitleLength    = 200
	maxContentsLength = 50000
)

type postService struct {
	repo     Repository
	likeRepo LikeRepository
	logger   *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(repo Repository, likeRepo LikeRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:     repo,
		likeRepo: likeRepo,
		logger:   logger,
	}
}

// ListPosts returns one page of all posts
func (s *postService) ListPosts(ctx context.Context, page PageRequest) (*PostPage, error) {
	return s.list(ctx, PostQuery{Page: page})
}

// SearchByTitle returns posts whose title contains title
func (s *postService) SearchByTitle(ctx context.Context, title string, page PageRequest) (*PostPage, error) {
	if strings.TrimSpace(title) == "" {
		return nil, NewValidationError("title", "search term is required")
	}
	return s.list(ctx, PostQuery{TitleContains: title, Page: page})
}

// SearchByUsername returns posts whose owner's username contains username
func (s *postService) SearchByUsername(ctx context.Context, username string, page PageRequest) (*PostPage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "search term is required")
	}
	return s.list(ctx, PostQuery{UsernameContains: username, Page: page})
}

func (s *postService) list(ctx context.Context, query PostQuery) (*PostPage, error) {
	page, err := query.Page.Normalize()
	if err != nil {
		return nil, err
	}
	query.Page = page

	content, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return NewPostPage(content, total, page), nil
}

// GetPost retrieves a single post
func (s *postService) GetPost(ctx context.Context, pid int64) (*Post, error) {
	if pid <= 0 {
		return nil, NewValidationError("pid", "must be positive")
	}
	return s.repo.GetByPID(ctx, pid)
}

// CreatePost persists a new post owned by caller
func (s *postService) CreatePost(ctx context.Context, caller *users.User, req CreatePostRequest) (*Post, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateContent(req.Title, req.Contents); err != nil {
		return nil, err
	}

	post := &Post{
		UID:      caller.UID,
		Username: caller.Username,
		Title:    strings.TrimSpace(req.Title),
		Contents: req.Contents,
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			"error", err,
			"uid", caller.UID)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created", "pid", post.PID, "uid", post.UID)
	return post, nil
}

// UpdatePost overwrites the mutable fields of a post owned by caller
func (s *postService) UpdatePost(ctx context.Context, caller *users.User, req UpdatePostRequest) (*Post, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateContent(req.Title, req.Contents); err != nil {
		return nil, err
	}

	post, err := s.loadOwned(ctx, caller, req.PID)
	if err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Contents = req.Contents

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error("failed to update post",
			"error", err,
			"pid", post.PID)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return post, nil
}

// DeletePost removes a post owned by caller
func (s *postService) DeletePost(ctx context.Context, caller *users.User, pid int64) (int64, error) {
	if caller == nil {
		return 0, ErrUnauthenticated
	}

	post, err := s.loadOwned(ctx, caller, pid)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, post.PID); err != nil {
		return 0, fmt.Errorf("failed to delete post: %w", err)
	}

	s.logger.Info("post deleted", "pid", post.PID, "uid", caller.UID)
	return post.PID, nil
}

// DeletePosts verifies every pid resolves before deleting any of them
func (s *postService) DeletePosts(ctx context.Context, pids []int64) (int, error) {
	if len(pids) == 0 {
		return 0, NewValidationError("ids", "at least one id is required")
	}

	seen := make(map[int64]struct{}, len(pids))
	unique := make([]int64, 0, len(pids))
	for _, pid := range pids {
		if _, dup := seen[pid]; dup {
			continue
		}
		seen[pid] = struct{}{}
		unique = append(unique, pid)
	}

	for _, pid := range unique {
		if _, err := s.repo.GetByPID(ctx, pid); err != nil {
			if IsNotFound(err) {
				return 0, NewNotFoundError("post", strconv.FormatInt(pid, 10))
			}
			return 0, fmt.Errorf("failed to load post %d: %w", pid, err)
		}
	}

	if err := s.repo.DeleteMany(ctx, unique); err != nil {
		s.logger.Error("batch delete failed", "error", err, "count", len(unique))
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}

	s.logger.Info("posts deleted", "count", len(unique))
	return len(unique), nil
}

// GetLike returns the user's current reaction or nil
func (s *postService) GetLike(ctx context.Context, pid, uid int64) (*bool, error) {
	if uid <= 0 {
		return nil, NewValidationError("uid", "must be positive")
	}
	if _, err := s.GetPost(ctx, pid); err != nil {
		return nil, err
	}

	like, err := s.likeRepo.Get(ctx, pid, uid)
	if errors.Is(err, ErrLikeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get like: %w", err)
	}

	return &like.Likes, nil
}

// SetLike creates the caller's reaction or flips it in place.
// Same-value calls rewrite the row and still report success.
func (s *postService) SetLike(ctx context.Context, caller *users.User, pid int64, likes bool) (*LikeResult, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}
	if _, err := s.GetPost(ctx, pid); err != nil {
		return nil, err
	}

	created, err := s.likeRepo.Upsert(ctx, &PostLike{
		PID:   pid,
		UID:   caller.UID,
		Likes: likes,
	})
	if err != nil {
		s.logger.Error("failed to save like",
			"error", err,
			"pid", pid,
			"uid", caller.UID)
		return nil, fmt.Errorf("failed to save like: %w", err)
	}

	s.logger.Debug("like state saved",
		"pid", pid,
		"uid", caller.UID,
		"likes", likes,
		"created", created)

	return &LikeResult{
		Permit:  true,
		Created: created,
		Likes:   likes,
	}, nil
}

// DeleteLike removes the caller's reaction if present
func (s *postService) DeleteLike(ctx context.Context, caller *users.User, pid int64) (bool, error) {
	if caller == nil {
		return false, ErrUnauthenticated
	}
	if pid <= 0 {
		return false, NewValidationError("pid", "must be positive")
	}

	deleted, err := s.likeRepo.Delete(ctx, pid, caller.UID)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}
	if !deleted {
		s.logger.Debug("no like to delete", "pid", pid, "uid", caller.UID)
	}

	return true, nil
}

// CountLikes tallies likes and dislikes for a post
func (s *postService) CountLikes(ctx context.Context, pid int64) (*LikeCounts, error) {
	if _, err := s.GetPost(ctx, pid); err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.CountByPost(ctx, pid, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}
	dislikes, err := s.likeRepo.CountByPost(ctx, pid, false)
	if err != nil {
		return nil, fmt.Errorf("failed to count dislikes: %w", err)
	}

	return &LikeCounts{PID: pid, Likes: likes, Dislikes: dislikes}, nil
}

// ListLikedBy returns every reaction recorded by caller
func (s *postService) ListLikedBy(ctx context.Context, caller *users.User) ([]*PostLike, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	likes, err := s.likeRepo.ListByUser(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	if likes == nil {
		likes = []*PostLike{}
	}
	return likes, nil
}

func (s *postService) loadOwned(ctx context.Context, caller *users.User, pid int64) (*Post, error) {
	post, err := s.GetPost(ctx, pid)
	if err != nil {
		return nil, err
	}
	if post.UID != caller.UID {
		s.logger.Warn("ownership check failed",
			"pid", pid,
			"owner", post.UID,
			"caller", caller.UID)
		return nil, ErrNotAuthorized
	}
	return post, nil
}

func validateContent(title, contents string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return NewValidationError("title", "is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return NewValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLength))
	}
	if utf8.RuneCountInString(contents) > maxContentsLength {
		return NewValidationError("contents", fmt.Sprintf("must be at most %d characters", maxContentsLength))
	}
	return nil
}
