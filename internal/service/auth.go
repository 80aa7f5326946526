package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/pkg/cookies"
	pkg_hash "github.com/Skotchmaster/roadmap/pkg/hash"
	"github.com/Skotchmaster/roadmap/pkg/logging"
)

// AuthService owns user accounts and their single session and reset-token slots.
// Only SHA-256 digests of issued tokens are stored; a new token replaces the old one.
type AuthService struct {
	Users  UserStore
	Events EventPublisher
}

func (s *AuthService) RegisterUser(ctx context.Context, firstName, lastName, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrMissingField)
	}
	if password == "" {
		return nil, fmt.Errorf("password is required: %w", ErrMissingField)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		HashedPassword: pwHash,
	}
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			l.Warn("register_failed", "reason", "email already registered")
			return nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// ValidLogin never fails: lookup errors and unknown emails both yield false.
func (s *AuthService) ValidLogin(ctx context.Context, email, password string) bool {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Error("valid_login_failed", "error", err)
		}
		return false
	}
	return pkg_hash.CheckPassword(user.HashedPassword, password)
}

func (s *AuthService) CreateSession(ctx context.Context, email string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.create_session")

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	sessionID := cookies.NewToken()
	digest := cookies.Sha256Hex(sessionID)
	user.SessionDigest = &digest
	if err := s.Users.Save(ctx, user); err != nil {
		l.Error("create_session_failed", "user_id", user.ID, "error", err)
		return "", err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})
	return sessionID, nil
}

// GetUserFromSessionID returns (nil, nil) when the session id is empty or unknown.
func (s *AuthService) GetUserFromSessionID(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	user, err := s.Users.FindBySessionDigest(ctx, cookies.Sha256Hex(sessionID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) DestroySession(ctx context.Context, userID string) error {
	l := logging.FromContext(ctx).With("svc", "auth.destroy_session")

	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user id %s: %w", userID, ErrUserNotFound)
		}
		return err
	}

	user.SessionDigest = nil
	if err := s.Users.Save(ctx, user); err != nil {
		l.Error("destroy_session_failed", "user_id", userID, "error", err)
		return err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "user_logged_out",
		"user_id": user.ID,
	})
	return nil
}

func (s *AuthService) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.reset_token")

	user, err := s.findByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token := cookies.NewToken()
	digest := cookies.Sha256Hex(token)
	user.ResetDigest = &digest
	if err := s.Users.Save(ctx, user); err != nil {
		l.Error("reset_token_failed", "user_id", user.ID, "error", err)
		return "", err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "password_reset_requested",
		"user_id": user.ID,
	})
	return token, nil
}

// UpdatePassword consumes the reset token: it cannot be used twice.
func (s *AuthService) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.update_password")

	if resetToken == "" {
		return ErrInvalidResetToken
	}
	user, err := s.Users.FindByResetDigest(ctx, cookies.Sha256Hex(resetToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if newPassword == "" {
		return fmt.Errorf("new_password is required: %w", ErrMissingField)
	}

	pwHash, err := pkg_hash.HashPassword(newPassword)
	if err != nil {
		l.Error("update_password_failed", "reason", "cannot hash the password", "error", err)
		return err
	}
	user.HashedPassword = pwHash
	user.ResetDigest = nil
	if err := s.Users.Save(ctx, user); err != nil {
		l.Error("update_password_failed", "user_id", user.ID, "error", err)
		return err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "password_updated",
		"user_id": user.ID,
	})
	return nil
}

func (s *AuthService) DeleteUser(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.delete_user")

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}
	if !pkg_hash.CheckPassword(user.HashedPassword, password) {
		return ErrInvalidCredentials
	}

	if err := s.Users.DeleteWithRoadmaps(ctx, user.ID); err != nil {
		l.Error("delete_user_failed", "user_id", user.ID, "error", err)
		return err
	}

	publish(ctx, l, s.Events, TopicUserEvents, user.ID, map[string]any{
		"type":    "user_deleted",
		"user_id": user.ID,
	})
	return nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", email, ErrUserNotFound)
		}
		return nil, err
	}
	return user, nil
}
