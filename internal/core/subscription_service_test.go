package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// MockSubscriptionRepository is a mock implementation of db.SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) List(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) GetByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, planID string, fields map[string]interface{}) error {
	args := m.Called(ctx, planID, fields)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestUpdatePlan(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, noopAudit{}, zap.NewNop())

	repo.On("GetByID", mock.Anything, "plan-1").
		Return(&models.SubscriptionPlan{SubscriptionID: "plan-1", Price: "2500"}, nil)
	repo.On("Update", mock.Anything, "plan-1", map[string]interface{}{
		"price": "3000",
	}).Return(nil).Once()

	_, err := svc.UpdatePlan(context.Background(), "plan-1", models.UpdateSubscriptionPlanRequest{
		Price: strPtr("3000"),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdatePlanNoFieldsIsNoop(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, noopAudit{}, zap.NewNop())

	repo.On("GetByID", mock.Anything, "plan-1").
		Return(&models.SubscriptionPlan{SubscriptionID: "plan-1"}, nil)

	plan, err := svc.UpdatePlan(context.Background(), "plan-1", models.UpdateSubscriptionPlanRequest{})
	require.NoError(t, err)
	assert.Equal(t, "plan-1", plan.SubscriptionID)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdatePlanNotFound(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	svc := NewSubscriptionService(repo, noopAudit{}, zap.NewNop())

	repo.On("GetByID", mock.Anything, "missing").
		Return(nil, fmt.Errorf("plan 'missing' not found: %w", db.ErrNotFound))

	_, err := svc.UpdatePlan(context.Background(), "missing", models.UpdateSubscriptionPlanRequest{})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}
