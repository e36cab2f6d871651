package db

import (
	"context"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// Repository interfaces consumed by the core services. Keeping them here
// lets the services be tested against mocks without a Firestore emulator.

// UserRepository defines storage operations for "User" documents.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByOrganization(ctx context.Context, organization string) ([]*models.User, error)
	Update(ctx context.Context, userID string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
}

// GymRepository defines storage operations for "Gyms" documents.
type GymRepository interface {
	Create(ctx context.Context, gym *models.Gym) error
	GetByID(ctx context.Context, gymID string) (*models.Gym, error)
	List(ctx context.Context) ([]*models.Gym, error)
	Set(ctx context.Context, gym *models.Gym) error
	Update(ctx context.Context, gymID string, fields map[string]interface{}) error
	Delete(ctx context.Context, gymID string) error
}

// ScanRepository reads "QR" check-in events.
type ScanRepository interface {
	List(ctx context.Context) ([]*models.QRScan, error)
}

// TransactionRepository reads "Transactions" documents.
type TransactionRepository interface {
	List(ctx context.Context) ([]*models.Transaction, error)
}

// SubscriptionRepository defines operations for "Subscriptions" plan documents.
type SubscriptionRepository interface {
	List(ctx context.Context) ([]*models.SubscriptionPlan, error)
	GetByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error)
	Update(ctx context.Context, planID string, fields map[string]interface{}) error
}

// PayoutRepository defines operations for "GymsPayoutRequests" documents.
type PayoutRepository interface {
	List(ctx context.Context) ([]*models.GymPayoutRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*models.GymPayoutRequest, error)
	GetByID(ctx context.Context, requestID string) (*models.GymPayoutRequest, error)
	Update(ctx context.Context, requestID string, fields map[string]interface{}) error
	WatchPendingCount(ctx context.Context, onCount func(int)) error
}

// AuditRepository persists admin action records.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AdminAuditLog) error
}
