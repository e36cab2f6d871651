package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

const auditLogsCollection = "AdminAuditLogs"

// firestoreAuditRepository implements AuditRepository using Firestore.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a new instance of firestoreAuditRepository.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends one audit entry with an auto-generated document ID.
func (r *firestoreAuditRepository) Create(ctx context.Context, entry *models.AdminAuditLog) error {
	docRef := r.client.Collection(auditLogsCollection).NewDoc()
	entry.ID = docRef.ID

	if _, err := docRef.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}
	return nil
}
