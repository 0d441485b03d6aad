package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service implements sign-up, login and session management on top of the
// user and session repositories.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	logger   *slog.Logger
}

// NewService creates an auth service.
func NewService(users UserRepository, sessions SessionRepository, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// SignUp creates a new account.
//
// The email is normalized (trimmed, lowercased) before the uniqueness
// pre-check, so addresses differing only in case collide. The UNIQUE
// constraint on users.email backstops the pre-check: two concurrent
// sign-ups for the same address cannot both commit.
func (s *Service) SignUp(ctx context.Context, email, password string) (*Account, error) {
	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyUsed
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	salt, err := NewSalt()
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: HashPassword(salt, password),
		Salt:         salt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID, "email", user.Email)
	return &Account{ID: user.ID, Email: user.Email}, nil
}

// Login verifies credentials and records the user in the session row.
//
// An unknown email and a wrong password both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(password, user.Salt, user.PasswordHash) {
		s.logger.Warn("login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := s.sessions.SetCurrentUser(ctx, &user.ID); err != nil {
		return nil, err
	}

	s.logger.Info("login", "user_id", user.ID)
	return &Account{ID: user.ID, Email: user.Email}, nil
}

// Logout clears the session row.
func (s *Service) Logout(ctx context.Context) error {
	return s.sessions.SetCurrentUser(ctx, nil)
}

// SetCurrentUser records the signed-in user directly. A nil id signs out.
func (s *Service) SetCurrentUser(ctx context.Context, userID *int64) error {
	return s.sessions.SetCurrentUser(ctx, userID)
}

// CurrentUser returns the signed-in account, or nil when no one is signed
// in. A session pointing at a since-deleted user also reports nil.
func (s *Service) CurrentUser(ctx context.Context) (*Account, error) {
	id, err := s.sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &Account{ID: user.ID, Email: user.Email}, nil
}

// DeleteAccount removes a user and everything they own. The session row's
// reference is cleared by the schema's ON DELETE SET NULL.
func (s *Service) DeleteAccount(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("account deleted", "user_id", id)
	return nil
}
