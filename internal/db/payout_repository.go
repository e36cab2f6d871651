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

const payoutsCollection = "GymsPayoutRequests"

// firestorePayoutRepository implements PayoutRepository using Firestore.
type firestorePayoutRepository struct {
	client *firestore.Client
}

// NewFirestorePayoutRepository creates a new instance of firestorePayoutRepository.
func NewFirestorePayoutRepository(client *firestore.Client) PayoutRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for PayoutRepository.")
	}
	return &firestorePayoutRepository{client: client}
}

// List retrieves all payout requests, newest first.
func (r *firestorePayoutRepository) List(ctx context.Context) ([]*models.GymPayoutRequest, error) {
	query := r.client.Collection(payoutsCollection).OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

// ListByStatus retrieves payout requests in one lifecycle state, newest first.
func (r *firestorePayoutRepository) ListByStatus(ctx context.Context, payoutStatus string) ([]*models.GymPayoutRequest, error) {
	if payoutStatus == "" {
		return r.List(ctx)
	}
	query := r.client.Collection(payoutsCollection).
		Where("status", "==", payoutStatus).
		OrderBy("createdAt", firestore.Desc)
	return r.collect(ctx, query)
}

func (r *firestorePayoutRepository) collect(ctx context.Context, query firestore.Query) ([]*models.GymPayoutRequest, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var requests []*models.GymPayoutRequest
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate payout requests: %w", err)
		}

		var req models.GymPayoutRequest
		if err := doc.DataTo(&req); err != nil {
			log.Printf("Error decoding payout request (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		req.ID = doc.Ref.ID
		requests = append(requests, &req)
	}
	return requests, nil
}

// GetByID retrieves one payout request.
func (r *firestorePayoutRepository) GetByID(ctx context.Context, requestID string) (*models.GymPayoutRequest, error) {
	if requestID == "" {
		return nil, errors.New("requestID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(payoutsCollection).Doc(requestID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("payout request '%s' not found: %w", requestID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payout request '%s': %w", requestID, err)
	}

	var req models.GymPayoutRequest
	if err := docSnap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode payout request '%s': %w", requestID, err)
	}
	req.ID = docSnap.Ref.ID
	return &req, nil
}

// Update applies the status transition fields to a payout request.
// Last write wins at the document level; concurrent approvals are not
// coordinated server-side.
func (r *firestorePayoutRepository) Update(ctx context.Context, requestID string, fields map[string]interface{}) error {
	if requestID == "" {
		return errors.New("requestID cannot be empty for Update operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection(payoutsCollection).Doc(requestID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("payout request '%s' not found for update: %w", requestID, ErrNotFound)
		}
		return fmt.Errorf("failed to update payout request '%s': %w", requestID, err)
	}
	return nil
}

// WatchPendingCount subscribes to the pending-request query and invokes
// onCount with the size of every snapshot the listener pushes. Each push
// is a full replacement of the watched result set, not a delta. The call
// blocks until ctx is cancelled, which is also how the listener is torn
// down; the caller runs it on its own goroutine.
func (r *firestorePayoutRepository) WatchPendingCount(ctx context.Context, onCount func(int)) error {
	query := r.client.Collection(payoutsCollection).Where("status", "==", models.PayoutStatusPending)

	snapIter := query.Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("payout snapshot listener failed: %w", err)
		}
		onCount(snap.Size)
	}
}
