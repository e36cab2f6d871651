package core

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
	"github.com/GymVisa/gymvisa-admin-dashboard/pkg/messagequeue"
)

// auditQueueName is the broker queue audit events are published to.
const auditQueueName = "gymvisa.admin.audit"

// AuditService records privileged admin actions. Recording is strictly
// best-effort: a failed audit write is logged and never fails the action
// it describes.
type AuditService interface {
	Record(ctx context.Context, action, actor, target, detail string)
}

type auditService struct {
	repo      db.AuditRepository
	publisher messagequeue.Publisher // nil disables event publishing
	logger    *zap.Logger
}

// NewAuditService creates an AuditService. The publisher is optional.
func NewAuditService(repo db.AuditRepository, publisher messagequeue.Publisher, logger *zap.Logger) AuditService {
	return &auditService{repo: repo, publisher: publisher, logger: logger}
}

// Record persists one audit entry and, when a publisher is configured,
// emits it as an event.
func (s *auditService) Record(ctx context.Context, action, actor, target, detail string) {
	entry := &models.AdminAuditLog{
		Action:    action,
		Actor:     actor,
		Target:    target,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to persist audit entry",
			zap.String("action", action), zap.String("target", target), zap.Error(err))
	}

	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("Failed to encode audit event", zap.String("action", action), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(auditQueueName, body); err != nil {
		s.logger.Warn("Failed to publish audit event",
			zap.String("action", action), zap.String("target", target), zap.Error(err))
	}
}
