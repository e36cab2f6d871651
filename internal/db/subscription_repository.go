package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

const subscriptionsCollection = "Subscriptions"

// firestoreSubscriptionRepository implements SubscriptionRepository using Firestore.
type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

// NewFirestoreSubscriptionRepository creates a new instance of firestoreSubscriptionRepository.
func NewFirestoreSubscriptionRepository(client *firestore.Client) SubscriptionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for SubscriptionRepository.")
	}
	return &firestoreSubscriptionRepository{client: client}
}

// List retrieves all subscription plan documents.
func (r *firestoreSubscriptionRepository) List(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	iter := r.client.Collection(subscriptionsCollection).Documents(ctx)
	defer iter.Stop()

	var plans []*models.SubscriptionPlan
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate subscription plans: %w", err)
		}

		var plan models.SubscriptionPlan
		if err := doc.DataTo(&plan); err != nil {
			log.Printf("Error decoding subscription plan (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		plan.SubscriptionID = doc.Ref.ID
		plans = append(plans, &plan)
	}
	return plans, nil
}

// GetByID retrieves one subscription plan document.
func (r *firestoreSubscriptionRepository) GetByID(ctx context.Context, planID string) (*models.SubscriptionPlan, error) {
	if planID == "" {
		return nil, errors.New("planID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(subscriptionsCollection).Doc(planID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("subscription plan '%s' not found: %w", planID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get subscription plan '%s': %w", planID, err)
	}

	var plan models.SubscriptionPlan
	if err := docSnap.DataTo(&plan); err != nil {
		return nil, fmt.Errorf("failed to decode subscription plan '%s': %w", planID, err)
	}
	plan.SubscriptionID = docSnap.Ref.ID
	return &plan, nil
}

// Update applies a partial field update. Only price and SubscriptionDays
// are admin-editable; the service enforces that.
func (r *firestoreSubscriptionRepository) Update(ctx context.Context, planID string, fields map[string]interface{}) error {
	if planID == "" {
		return errors.New("planID cannot be empty for Update operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection(subscriptionsCollection).Doc(planID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("subscription plan '%s' not found for update: %w", planID, ErrNotFound)
		}
		return fmt.Errorf("failed to update subscription plan '%s': %w", planID, err)
	}
	return nil
}
