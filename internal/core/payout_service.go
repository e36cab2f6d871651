package core

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// PayoutService manages gym withdrawal requests: listing, the two terminal
// transitions, and a live pending counter fed by a snapshot listener.
type PayoutService interface {
	ListPayouts(ctx context.Context, status string) ([]*models.GymPayoutRequest, error)
	GetPayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error)
	ApprovePayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error)
	RejectPayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error)
	PendingCount() int
	StartPendingWatcher(ctx context.Context)
}

type payoutService struct {
	payoutRepo   db.PayoutRepository
	audit        AuditService
	logger       *zap.Logger
	pendingCount atomic.Int64
	now          func() time.Time
}

// NewPayoutService creates a PayoutService. The pending counter reads zero
// until StartPendingWatcher has received its first snapshot.
func NewPayoutService(payoutRepo db.PayoutRepository, audit AuditService, logger *zap.Logger) PayoutService {
	return &payoutService{
		payoutRepo: payoutRepo,
		audit:      audit,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *payoutService) ListPayouts(ctx context.Context, status string) ([]*models.GymPayoutRequest, error) {
	return s.payoutRepo.ListByStatus(ctx, status)
}

func (s *payoutService) GetPayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error) {
	req, err := s.payoutRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPayoutNotFound, requestID)
		}
		return nil, err
	}
	return req, nil
}

// ApprovePayout moves a pending request to approved, stamping who actioned
// it and when. Requests already actioned are rejected with
// ErrPayoutNotPending regardless of which terminal state they are in.
func (s *payoutService) ApprovePayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error) {
	return s.transition(ctx, requestID, models.PayoutStatusApproved)
}

// RejectPayout moves a pending request to rejected. Same rules as approval.
func (s *payoutService) RejectPayout(ctx context.Context, requestID string) (*models.GymPayoutRequest, error) {
	return s.transition(ctx, requestID, models.PayoutStatusRejected)
}

func (s *payoutService) transition(ctx context.Context, requestID, status string) (*models.GymPayoutRequest, error) {
	req, err := s.GetPayout(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		return nil, fmt.Errorf("%w: %s is %s", ErrPayoutNotPending, requestID, req.Status)
	}

	actor := adminActor(ctx)
	stamp := s.now().UTC().Format(time.RFC3339)

	fields := map[string]interface{}{"status": status}
	switch status {
	case models.PayoutStatusApproved:
		fields["approvedAt"] = stamp
		fields["approvedBy"] = actor
	case models.PayoutStatusRejected:
		fields["rejectedAt"] = stamp
		fields["rejectedBy"] = actor
	}

	if err := s.payoutRepo.Update(ctx, requestID, fields); err != nil {
		return nil, fmt.Errorf("failed to mark payout request %s %s: %w", requestID, status, err)
	}

	s.audit.Record(ctx, "payout."+status, actor, requestID,
		fmt.Sprintf("gym=%s amount=%.2f", req.GymID, req.WithdrawalAmount))
	return s.GetPayout(ctx, requestID)
}

// PendingCount returns the most recent pending-request count pushed by the
// watcher. It is a cached read; ListPayouts with status "pending" is the
// authoritative query.
func (s *payoutService) PendingCount() int {
	return int(s.pendingCount.Load())
}

// StartPendingWatcher runs the snapshot listener on its own goroutine,
// restarting it with a short backoff when the stream fails. Cancelling
// ctx stops the watcher for good.
func (s *payoutService) StartPendingWatcher(ctx context.Context) {
	go func() {
		for {
			err := s.payoutRepo.WatchPendingCount(ctx, func(count int) {
				s.pendingCount.Store(int64(count))
				s.logger.Debug("Pending payout count updated", zap.Int("count", count))
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				s.logger.Warn("Payout watcher stopped; restarting", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()
}
