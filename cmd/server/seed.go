package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spf13/cobra"

	"Inkwell/internal/config"
	"Inkwell/internal/core/categories"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
)

var seedUsernames = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
}

var seedTitles = []string{
	"Getting started with Go modules",
	"Why I moved my blog to Postgres",
	"Notes on context cancellation",
	"A week with chi and net/http",
	"Table-driven tests in practice",
	"Pagination without surprises",
	"Designing small interfaces",
	"What I learned writing migrations",
}

var seedCategories = []categories.CreateCategoryRequest{
	{Parent: "language", Name: "go"},
	{Parent: "language", Name: "sql"},
	{Parent: "topic", Name: "testing"},
	{Parent: "topic", Name: "databases"},
	{Parent: "topic", Name: "http"},
}

func seedCmd() *cobra.Command {
	var postsPerUser int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample users, posts, likes and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			logger := cfg.Logger()

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.migrateUp(); err != nil {
				return err
			}

			userService, postService, categoryService := st.services(logger)
			return seed(cmd.Context(), logger, userService, postService, categoryService, postsPerUser)
		},
	}

	cmd.Flags().IntVar(&postsPerUser, "posts", 3, "posts to create per user")
	return cmd
}

func seed(ctx context.Context, logger *slog.Logger, userService users.Service, postService posts.Service,
	categoryService categories.Service, postsPerUser int,
) error {
	var seeded []*users.User
	for _, name := range seedUsernames {
		user, err := userService.Register(ctx, users.RegisterUserRequest{
			Username: name,
			Email:    name + "@example.com",
			Provider: "seed_" + name,
		})
		if users.IsConflict(err) {
			user, err = userService.GetByProvider(ctx, "seed_"+name)
		}
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", name, err)
		}
		seeded = append(seeded, user)
	}

	var created []*posts.Post
	for _, user := range seeded {
		for i := 0; i < postsPerUser; i++ {
			post, err := postService.CreatePost(ctx, user, posts.CreatePostRequest{
				Title:    seedTitles[rand.Intn(len(seedTitles))],
				Contents: fmt.Sprintf("Sample post %d by %s.", i+1, user.Username),
			})
			if err != nil {
				return fmt.Errorf("failed to seed post: %w", err)
			}
			created = append(created, post)
		}
	}

	reactions := 0
	for _, post := range created {
		for _, user := range seeded {
			if user.UID == post.UID || rand.Intn(3) == 0 {
				continue
			}
			if _, err := postService.SetLike(ctx, user, post.PID, rand.Intn(4) != 0); err != nil {
				return fmt.Errorf("failed to seed like: %w", err)
			}
			reactions++
		}
	}

	for _, req := range seedCategories {
		if _, err := categoryService.Create(ctx, req); err != nil && !categories.IsConflict(err) {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}

	logger.Info("seed complete",
		"users", len(seeded),
		"posts", len(created),
		"reactions", reactions,
		"categories", len(seedCategories))
	return nil
}
