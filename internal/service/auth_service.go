package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/mm-grybel/CS50-Study/internal/auth"
	apperrors "github.com/mm-grybel/CS50-Study/internal/errors"
	"github.com/mm-grybel/CS50-Study/internal/model"
	"github.com/mm-grybel/CS50-Study/internal/repository"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// AuthService handles registration, login and session verification.
type AuthService interface {
	Register(ctx context.Context, email, username, password, passwordConfirm string) (*model.User, error)
	Login(ctx context.Context, email, password string, remember bool) (token string, user *model.User, err error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo     repository.UserRepository
	tokenService *auth.TokenService
	sessions     auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokenService *auth.TokenService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenService: tokenService,
		sessions:     sessions,
	}
}

// Register creates a new user storing only a password hash. Duplicate email
// and username are rejected here; the unique indexes on users back this up
// against concurrent registrations.
func (s *authService) Register(ctx context.Context, email, username, password, passwordConfirm string) (*model.User, error) {
	if password != passwordConfirm {
		return nil, apperrors.ErrPasswordMismatch
	}
	if !usernamePattern.MatchString(username) {
		return nil, apperrors.ErrInvalidUsername
	}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email existence: %w", err)
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username existence: %w", err)
	}

	user := &model.User{
		Email:    email,
		Username: username,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates by email and establishes a session. Failure is always
// the generic ErrInvalidCredentials, whether the email is unknown or the
// password wrong. The session lives 24 hours, or 30 days with remember.
func (s *authService) Login(ctx context.Context, email, password string, remember bool) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	ttl := auth.SessionExpiry
	if remember {
		ttl = auth.RememberedSessionExpiry
	}

	sessionID, token, err := s.tokenService.IssueToken(user.ID, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	if err := s.sessions.CreateSession(ctx, sessionID, user.ID, ttl); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Authenticate resolves a session token to its user. Any failure, from a
// tampered token to a revoked session, collapses to ErrAuthRequired.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokenService.VerifyToken(token)
	if err != nil {
		return nil, apperrors.ErrAuthRequired
	}

	userID, err := s.sessions.GetSession(ctx, claims.ID)
	if err != nil || userID != claims.UserID {
		return nil, apperrors.ErrAuthRequired
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrAuthRequired
	}

	return user, nil
}

// Logout invalidates the session behind a token immediately. Logging out an
// invalid or already-expired token is a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokenService.VerifyToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, claims.ID)
}
