package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// MockPayoutRepository is a mock implementation of db.PayoutRepository.
type MockPayoutRepository struct {
	mock.Mock
}

func (m *MockPayoutRepository) List(ctx context.Context) ([]*models.GymPayoutRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GymPayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) ListByStatus(ctx context.Context, status string) ([]*models.GymPayoutRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GymPayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) GetByID(ctx context.Context, requestID string) (*models.GymPayoutRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GymPayoutRequest), args.Error(1)
}

func (m *MockPayoutRepository) Update(ctx context.Context, requestID string, fields map[string]interface{}) error {
	args := m.Called(ctx, requestID, fields)
	return args.Error(0)
}

func (m *MockPayoutRepository) WatchPendingCount(ctx context.Context, onCount func(int)) error {
	args := m.Called(ctx, onCount)
	return args.Error(0)
}

// noopAudit discards audit records in tests.
type noopAudit struct{}

func (noopAudit) Record(ctx context.Context, action, actor, target, detail string) {}

func newTestPayoutService(repo *MockPayoutRepository) *payoutService {
	svc := NewPayoutService(repo, noopAudit{}, zap.NewNop()).(*payoutService)
	svc.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestApprovePayout(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := newTestPayoutService(repo)

	pending := &models.GymPayoutRequest{
		ID: "req-1", GymID: "gym-1", WithdrawalAmount: 250,
		Status: models.PayoutStatusPending,
	}
	approved := &models.GymPayoutRequest{
		ID: "req-1", GymID: "gym-1", WithdrawalAmount: 250,
		Status: models.PayoutStatusApproved,
	}

	repo.On("GetByID", mock.Anything, "req-1").Return(pending, nil).Once()
	repo.On("Update", mock.Anything, "req-1", map[string]interface{}{
		"status":     models.PayoutStatusApproved,
		"approvedAt": "2024-05-01T12:00:00Z",
		"approvedBy": "unknown",
	}).Return(nil).Once()
	repo.On("GetByID", mock.Anything, "req-1").Return(approved, nil).Once()

	result, err := svc.ApprovePayout(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, models.PayoutStatusApproved, result.Status)
	repo.AssertExpectations(t)
}

func TestApprovePayoutRecordsActor(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := newTestPayoutService(repo)

	pending := &models.GymPayoutRequest{ID: "req-1", Status: models.PayoutStatusPending}

	repo.On("GetByID", mock.Anything, "req-1").Return(pending, nil)
	repo.On("Update", mock.Anything, "req-1", map[string]interface{}{
		"status":     models.PayoutStatusApproved,
		"approvedAt": "2024-05-01T12:00:00Z",
		"approvedBy": "admin@gymvisa.com",
	}).Return(nil).Once()

	ctx := context.WithValue(context.Background(), ContextKeyAdminEmail, "admin@gymvisa.com")
	_, err := svc.ApprovePayout(ctx, "req-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRejectPayout(t *testing.T) {
	repo := new(MockPayoutRepository)
	svc := newTestPayoutService(repo)

	pending := &models.GymPayoutRequest{ID: "req-2", Status: models.PayoutStatusPending}

	repo.On("GetByID", mock.Anything, "req-2").Return(pending, nil)
	repo.On("Update", mock.Anything, "req-2", map[string]interface{}{
		"status":     models.PayoutStatusRejected,
		"rejectedAt": "2024-05-01T12:00:00Z",
		"rejectedBy": "unknown",
	}).Return(nil).Once()

	_, err := svc.RejectPayout(context.Background(), "req-2")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTransitionRejectsNonPending(t *testing.T) {
	for _, status := range []string{models.PayoutStatusApproved, models.PayoutStatusRejected} {
		repo := new(MockPayoutRepository)
		svc := newTestPayoutService(repo)

		repo.On("GetByID", mock.Anything, "req-3").
			Return(&models.GymPayoutRequest{ID: "req-3", Status: status}, nil)

		_, err := svc.ApprovePayout(context.Background(), "req-3")
		assert.ErrorIs(t, err, ErrPayoutNotPending, "status %s", status)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestPendingCountStartsAtZero(t *testing.T) {
	svc := newTestPayoutService(new(MockPayoutRepository))
	assert.Equal(t, 0, svc.PendingCount())

	svc.pendingCount.Store(7)
	assert.Equal(t, 7, svc.PendingCount())
}
