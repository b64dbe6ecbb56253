// internal/auth/service.go
// Business logic for sign-up, sign-in and token handling.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/imadgeboyega/datemate-backend/internal/common/utils"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrTooManyAttempts    = errors.New("too many attempts")
)

const tokenIssuer = "datemate-backend"

type Service interface {
	Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error)
	Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	Logout(ctx context.Context, token string) error
	LogoutAllDevices(ctx context.Context, userID int64) error
	GetUserByID(ctx context.Context, userID int64) (*User, error)
	CleanupSessions(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	attempts AttemptTracker
	config   *Config
	now      func() time.Time
}

// Config holds service configuration
type Config struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BCryptCost         int
}

func NewService(repo Repository, attempts AttemptTracker, config *Config) Service {
	if attempts == nil {
		attempts = noopAttemptTracker{}
	}
	return &service{
		repo:     repo,
		attempts: attempts,
		config:   config,
		now:      time.Now,
	}
}

// Signup creates an account and signs the user straight in
func (s *service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, errors.New("passwords do not match")
	}

	email := normalizeEmail(req.Email)
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.createAuthSession(ctx, user)
}

func (s *service) Signin(ctx context.Context, req *SigninRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if s.attempts.Blocked(ctx, email) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.attempts.RecordFailure(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.attempts.RecordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	s.attempts.Reset(ctx, email)
	return s.createAuthSession(ctx, user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateJWT(refreshToken, s.config.JWTSecret)
	if err != nil || claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	session, err := s.repo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// rotate: the old pair stops working
	if err := s.repo.DeleteSessionByToken(ctx, session.Token); err != nil {
		return nil, err
	}

	return s.createAuthSession(ctx, user)
}

// ValidateToken checks the signature and that the session was not logged out
func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if _, err := s.repo.GetSessionByToken(ctx, token); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.repo.DeleteSessionByToken(ctx, token)
}

func (s *service) LogoutAllDevices(ctx context.Context, userID int64) error {
	return s.repo.DeleteUserSessions(ctx, userID)
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// CleanupSessions removes sessions older than the refresh token lifetime
func (s *service) CleanupSessions(ctx context.Context) (int64, error) {
	return s.repo.DeleteSessionsCreatedBefore(ctx, s.now().Add(-s.config.RefreshTokenExpiry))
}

func (s *service) createAuthSession(ctx context.Context, user *User) (*AuthResponse, error) {
	accessToken, err := s.generateToken(user, "access", s.config.AccessTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateToken(user, "refresh", s.config.RefreshTokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := s.now()
	session := &Session{
		UserID:       user.ID,
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.config.AccessTokenExpiry),
		CreatedAt:    now,
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.config.AccessTokenExpiry.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

func (s *service) generateToken(user *User, tokenType string, expiry time.Duration) (string, error) {
	claims := utils.NewJWTClaims(user.ID, user.Email, user.Name, tokenType, tokenIssuer, s.now(), expiry)
	return utils.GenerateJWT(claims, s.config.JWTSecret)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
