package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Inkwell/internal/api/middleware"
	"Inkwell/internal/config"
)

func tokenCmd() *cobra.Command {
	var (
		provider string
		ttl      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a provider identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only JWT_SECRET is needed here, so other config errors are ignored
			cfg, _ := config.Load()
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			token, err := middleware.NewJWTAuthMiddleware(cfg.JWTSecret).IssueToken(provider, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "provider identifier to put in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
