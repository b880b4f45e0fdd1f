package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/storerating/rating-system/internal/core/domain"
	"github.com/storerating/rating-system/internal/core/ports"
	"github.com/storerating/rating-system/internal/infrastructure/metrics"
)

var _ ports.LoginLimiter = noopLimiter{}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, error)  { return true, nil }
func (noopLimiter) RecordFailure(context.Context, string) error { return nil }
func (noopLimiter) Reset(context.Context, string) error         { return nil }

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements registration, login and password changes.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	limiter  ports.LoginLimiter
	tokenTTL time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires an AuthService. A nil limiter disables login
// throttling.
func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	limiter ports.LoginLimiter,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if limiter == nil {
		limiter = noopLimiter{}
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		limiter:  limiter,
		tokenTTL: tokenTTL,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup registers a regular user.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	user, err := createAccount(ctx, s.repo, s.hasher, newAccount{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Address:  in.Address,
		Role:     domain.RoleUser,
	}, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("user signed up")
	return user, nil
}

// Login verifies the credentials and returns a signed token. Unknown emails
// and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("login limiter check failed, allowing attempt")
	} else if !allowed {
		metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
		return "", nil, domain.ErrTooManyLoginAttempts
	}

	creds, err := s.repo.FindCredentialsByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.loginFailed(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, creds.PasswordHash) {
		s.loginFailed(ctx, email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to reset login limiter")
	}

	token, err := s.tokens.Issue(creds.User.ID, creds.User.Role, s.now().Add(s.tokenTTL))
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	user := creds.User
	return token, &user, nil
}

func (s *AuthService) loginFailed(ctx context.Context, email string) {
	metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
	if err := s.limiter.RecordFailure(ctx, email); err != nil {
		s.log.Warn().Err(err).Msg("failed to record login failure")
	}
}

// ChangePassword replaces the caller's password after checking the current
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return domain.NewValidationError("current password is required")
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	creds, err := s.repo.FindCredentialsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !s.hasher.Verify(oldPassword, creds.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash, s.now()); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
