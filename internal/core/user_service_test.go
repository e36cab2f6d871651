package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// MockUserRepository is a mock implementation of db.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) ListByOrganization(ctx context.Context, organization string) ([]*models.User, error) {
	args := m.Called(ctx, organization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com", "x+tag@sub.domain.org"}
	for _, email := range valid {
		assert.NoError(t, validateEmail(email), email)
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@nodot"}
	for _, email := range invalid {
		assert.ErrorIs(t, validateEmail(email), ErrInvalidEmail, email)
	}
}

func TestRandomPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := randomPassword(12)
		require.NoError(t, err)
		assert.Len(t, password, 12)
		for _, ch := range password {
			assert.True(t, strings.ContainsRune(passwordChars, ch),
				"unexpected character %q", ch)
		}
		seen[password] = true
	}
	// 20 draws from a 70-char alphabet colliding would mean the generator
	// is broken, not unlucky.
	assert.Greater(t, len(seen), 1)
}

func TestAdminActor(t *testing.T) {
	assert.Equal(t, "unknown", adminActor(context.Background()))

	ctx := context.WithValue(context.Background(), ContextKeyAdminEmail, "admin@gymvisa.com")
	assert.Equal(t, "admin@gymvisa.com", adminActor(ctx))
}

func TestCreateUserRollsBackAuthOnProfileFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	authClient := new(MockAuthClient)
	svc := NewUserService(userRepo, authClient, noopAudit{}, zap.NewNop())

	authClient.On("CreateUser", mock.Anything, mock.Anything).Return(authRecord("u1"), nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("firestore unavailable"))
	authClient.On("DeleteUser", mock.Anything, "u1").Return(nil).Once()

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		Name:     "Alice",
	})
	require.Error(t, err)
	authClient.AssertExpectations(t)
}

func TestCreateUserRejectsBadInputBeforeAuth(t *testing.T) {
	authClient := new(MockAuthClient)
	svc := NewUserService(new(MockUserRepository), authClient, noopAudit{}, zap.NewNop())

	_, err := svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email: "not-an-email", Password: "secret123", Name: "X",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.CreateUser(context.Background(), models.CreateUserRequest{
		Email: "alice@example.com", Password: "short", Name: "X",
	})
	assert.ErrorIs(t, err, ErrWeakPassword)

	authClient.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestResetPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	authClient := new(MockAuthClient)
	svc := NewUserService(userRepo, authClient, noopAudit{}, zap.NewNop())

	authClient.On("GetUserByEmail", mock.Anything, "alice@example.com").
		Return(authRecord("u1"), nil)
	authClient.On("UpdateUser", mock.Anything, "u1", mock.Anything).
		Return(authRecord("u1"), nil)

	password, err := svc.ResetPassword(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, password, 12)
}
