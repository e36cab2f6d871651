package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// passwordChars is the alphabet for generated passwords.
const passwordChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"

// minPasswordLength mirrors the Firebase Auth minimum so weak passwords
// are rejected before any network call.
const minPasswordLength = 6

// UserService performs privileged member-account operations: creating the
// linked auth identity + profile document pair, admin edits, freeze holds,
// password resets, and deletion of both halves.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error)
	SetFrozen(ctx context.Context, userID string, frozen bool) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, email string) (string, error)
}

type userService struct {
	userRepo   db.UserRepository
	authClient AuthClient
	audit      AuditService
	logger     *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(userRepo db.UserRepository, authClient AuthClient, audit AuditService, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, authClient: authClient, audit: audit, logger: logger}
}

// CreateUser creates one Firebase Auth identity and one linked profile
// document. Subscription defaults to "None" and the account starts
// verified, matching how the mobile signup flow seeds profiles.
func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	record, err := s.authClient.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Name))
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, req.Email)
		}
		return nil, fmt.Errorf("failed to create auth user for %s: %w", req.Email, err)
	}

	now := time.Now().UTC()
	user := &models.User{
		UserID:                record.UID,
		Name:                  req.Name,
		Email:                 req.Email,
		PhoneNo:               req.PhoneNo,
		Gender:                req.Gender,
		Subscription:          models.SubscriptionNone,
		SubscriptionStartDate: now,
		SubscriptionEndDate:   now,
		Verified:              true,
		Organization:          req.Organization,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The auth identity exists but the profile write failed. Roll the
		// identity back so a retry does not hit DuplicateEmail.
		if delErr := s.authClient.DeleteUser(ctx, record.UID); delErr != nil {
			s.logger.Error("Failed to roll back auth user after profile write failure",
				zap.String("uid", record.UID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to create profile for %s: %w", req.Email, err)
	}

	s.audit.Record(ctx, "user.create", adminActor(ctx), record.UID, req.Email)
	return user, nil
}

// GetUser retrieves a member profile.
func (s *userService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers retrieves every member profile.
func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser applies the admin-editable fields that were present in the
// request and returns the refreshed profile.
func (s *userService) UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["Name"] = *req.Name
	}
	if req.PhoneNo != nil {
		fields["PhoneNo"] = *req.PhoneNo
	}
	if req.Gender != nil {
		fields["Gender"] = *req.Gender
	}
	if req.Subscription != nil {
		fields["Subscription"] = *req.Subscription
	}
	if req.Organization != nil {
		fields["Organization"] = *req.Organization
	}
	if req.IsUserFreezed != nil {
		fields["isUserFreezed"] = *req.IsUserFreezed
	}
	if req.SubscriptionStartDate != nil {
		t, err := time.Parse("2006-01-02", *req.SubscriptionStartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid SubscriptionStartDate %q: %w", *req.SubscriptionStartDate, err)
		}
		fields["SubscriptionStartDate"] = t
	}
	if req.SubscriptionEndDate != nil {
		t, err := time.Parse("2006-01-02", *req.SubscriptionEndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid SubscriptionEndDate %q: %w", *req.SubscriptionEndDate, err)
		}
		fields["SubscriptionEndDate"] = t
	}
	if len(fields) == 0 {
		return nil, errors.New("no editable fields in request")
	}

	if err := s.userRepo.Update(ctx, userID, fields); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, err
	}

	s.audit.Record(ctx, "user.update", adminActor(ctx), userID, "")
	return s.GetUser(ctx, userID)
}

// SetFrozen sets the administrative hold flag. Freezing is reversible.
func (s *userService) SetFrozen(ctx context.Context, userID string, frozen bool) (*models.User, error) {
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"isUserFreezed": frozen}); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
		}
		return nil, err
	}
	s.audit.Record(ctx, "user.freeze", adminActor(ctx), userID, fmt.Sprintf("frozen=%t", frozen))
	return s.GetUser(ctx, userID)
}

// DeleteUser removes the auth identity and the profile document. The auth
// delete runs first; if it fails the profile is left untouched so the
// account stays consistent.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.authClient.DeleteUser(ctx, userID); err != nil {
		if auth.IsUserNotFound(err) {
			// Identity already gone; still remove the orphaned profile.
			s.logger.Warn("Auth identity missing during delete, removing profile only",
				zap.String("uid", userID))
		} else {
			return fmt.Errorf("failed to delete auth user %s: %w", userID, err)
		}
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	s.audit.Record(ctx, "user.delete", adminActor(ctx), userID, "")
	return nil
}

// ResetPassword overwrites the account password with a fresh random one
// and returns it in plaintext for one-time display. It is never stored or
// re-derivable; the admin relays it out of band.
func (s *userService) ResetPassword(ctx context.Context, email string) (string, error) {
	record, err := s.authClient.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return "", fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return "", fmt.Errorf("failed to look up user by email %s: %w", email, err)
	}

	newPassword, err := randomPassword(12)
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	if _, err := s.authClient.UpdateUser(ctx, record.UID, (&auth.UserToUpdate{}).Password(newPassword)); err != nil {
		return "", fmt.Errorf("failed to update password for %s: %w", email, err)
	}

	s.audit.Record(ctx, "user.reset_password", adminActor(ctx), record.UID, email)
	return newPassword, nil
}

// validateEmail is a cheap structural check so obviously malformed emails
// fail before any network call; Firebase enforces the rest.
func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at+1:], ".") {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// randomPassword draws n characters from passwordChars using crypto/rand.
func randomPassword(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(passwordChars)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordChars[idx.Int64()]
	}
	return string(out), nil
}

// adminActor pulls the authenticated admin identity out of the request
// context; middleware stores it under this key.
type contextKey string

// ContextKeyAdminEmail is set by the auth middleware.
const ContextKeyAdminEmail contextKey = "adminEmail"

func adminActor(ctx context.Context) string {
	if v, ok := ctx.Value(ContextKeyAdminEmail).(string); ok {
		return v
	}
	return "unknown"
}
