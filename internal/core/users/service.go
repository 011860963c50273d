package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Usernames: 2-32 chars, letters, digits, underscore, dot or hyphen
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]{2,32}$`)

type userService struct {
	userRepo UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register creates a new user record
func (s *userService) Register(ctx context.Context, req RegisterUserRequest) (*User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Provider = strings.TrimSpace(req.Provider)

	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &User{
		Username: req.Username,
		Email:    req.Email,
		Provider: req.Provider,
	})
	if err != nil {
		if IsConflict(err) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			"error", err,
			"username", req.Username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "uid", user.UID, "username", user.Username)
	return user, nil
}

// GetByUID retrieves a user by id
func (s *userService) GetByUID(ctx context.Context, uid int64) (*User, error) {
	if uid <= 0 {
		return nil, NewValidationError("uid", "must be positive")
	}
	return s.userRepo.GetByUID(ctx, uid)
}

// GetByUsername retrieves a user by their username
func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewValidationError("username", "is required")
	}
	return s.userRepo.GetByUsername(ctx, username)
}

// GetByProvider retrieves a user by their provider identifier
func (s *userService) GetByProvider(ctx context.Context, provider string) (*User, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil, NewValidationError("provider", "is required")
	}
	return s.userRepo.GetByProvider(ctx, provider)
}

// ResolveCaller resolves the authenticated principal to a user.
// Unknown providers are treated as unauthenticated rather than not found so
// a token for a deleted account cannot be told apart from a bad token.
func (s *userService) ResolveCaller(ctx context.Context, provider string) (*User, error) {
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByProvider(ctx, provider)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.Warn("token subject has no matching user", "provider", provider)
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to resolve caller: %w", err)
	}

	return user, nil
}

func validateRegisterRequest(req RegisterUserRequest) error {
	if req.Username == "" {
		return NewValidationError("username", "is required")
	}
	if !usernameRegex.MatchString(req.Username) {
		return NewValidationError("username", "must be 2-32 characters of letters, digits, '_', '.' or '-'")
	}
	if req.Email == "" {
		return NewValidationError("email", "is required")
	}
	if at := strings.Index(req.Email, "@"); at <= 0 || at == len(req.Email)-1 {
		return NewValidationError("email", "invalid email address")
	}
	if req.Provider == "" {
		return NewValidationError("provider", "is required")
	}
	return nil
}
