package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// SubscriptionService manages the catalog of subscription plans. Plans are
// seeded out of band; the dashboard only lists them and edits price and
// duration.
type SubscriptionService interface {
	ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error)
	GetPlan(ctx context.Context, planID string) (*models.SubscriptionPlan, error)
	UpdatePlan(ctx context.Context, planID string, req models.UpdateSubscriptionPlanRequest) (*models.SubscriptionPlan, error)
}

type subscriptionService struct {
	planRepo db.SubscriptionRepository
	audit    AuditService
	logger   *zap.Logger
}

// NewSubscriptionService creates a SubscriptionService.
func NewSubscriptionService(planRepo db.SubscriptionRepository, audit AuditService, logger *zap.Logger) SubscriptionService {
	return &subscriptionService{planRepo: planRepo, audit: audit, logger: logger}
}

func (s *subscriptionService) ListPlans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	return s.planRepo.List(ctx)
}

func (s *subscriptionService) GetPlan(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, planID)
		}
		return nil, err
	}
	return plan, nil
}

// UpdatePlan edits the two mutable plan fields. Name and description stay
// fixed once seeded; omitted fields are left untouched.
func (s *subscriptionService) UpdatePlan(ctx context.Context, planID string, req models.UpdateSubscriptionPlanRequest) (*models.SubscriptionPlan, error) {
	if _, err := s.GetPlan(ctx, planID); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.SubscriptionDays != nil {
		fields["SubscriptionDays"] = *req.SubscriptionDays
	}
	if len(fields) == 0 {
		return s.GetPlan(ctx, planID)
	}

	if err := s.planRepo.Update(ctx, planID, fields); err != nil {
		return nil, fmt.Errorf("failed to update plan %s: %w", planID, err)
	}

	s.audit.Record(ctx, "subscription.update_plan", adminActor(ctx), planID,
		fmt.Sprintf("fields=%d", len(fields)))
	return s.GetPlan(ctx, planID)
}
