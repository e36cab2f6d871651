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

const gymsCollection = "Gyms"

// firestoreGymRepository implements GymRepository using Firestore.
type firestoreGymRepository struct {
	client *firestore.Client
}

// NewFirestoreGymRepository creates a new instance of firestoreGymRepository.
func NewFirestoreGymRepository(client *firestore.Client) GymRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for GymRepository.")
	}
	return &firestoreGymRepository{client: client}
}

// Create adds a new gym document, keyed by the gym's generated gymID.
func (r *firestoreGymRepository) Create(ctx context.Context, gym *models.Gym) error {
	if gym.GymID == "" {
		return errors.New("gymID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(gymsCollection).Doc(gym.GymID).Create(ctx, gym)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("gym with ID '%s' already exists: %w", gym.GymID, err)
		}
		return fmt.Errorf("failed to create gym with ID '%s': %w", gym.GymID, err)
	}
	return nil
}

// GetByID retrieves a gym document by its ID.
func (r *firestoreGymRepository) GetByID(ctx context.Context, gymID string) (*models.Gym, error) {
	if gymID == "" {
		return nil, errors.New("gymID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(gymsCollection).Doc(gymID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("gym with ID '%s' not found: %w", gymID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get gym with ID '%s': %w", gymID, err)
	}

	var gym models.Gym
	if err := docSnap.DataTo(&gym); err != nil {
		return nil, fmt.Errorf("failed to decode gym data for ID '%s': %w", gymID, err)
	}
	gym.GymID = docSnap.Ref.ID

	return &gym, nil
}

// List retrieves all gym documents.
func (r *firestoreGymRepository) List(ctx context.Context) ([]*models.Gym, error) {
	iter := r.client.Collection(gymsCollection).Documents(ctx)
	defer iter.Stop()

	var gyms []*models.Gym
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate gyms: %w", err)
		}

		var gym models.Gym
		if err := doc.DataTo(&gym); err != nil {
			log.Printf("Error decoding gym data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		gym.GymID = doc.Ref.ID
		gyms = append(gyms, &gym)
	}
	return gyms, nil
}

// Set overwrites a gym document with the full model. Used for edits where
// the service has already merged the stored state with the request.
func (r *firestoreGymRepository) Set(ctx context.Context, gym *models.Gym) error {
	if gym.GymID == "" {
		return errors.New("gymID cannot be empty for Set operation")
	}
	_, err := r.client.Collection(gymsCollection).Doc(gym.GymID).Set(ctx, gym)
	if err != nil {
		return fmt.Errorf("failed to set gym with ID '%s': %w", gym.GymID, err)
	}
	return nil
}

// Update applies a partial field update, e.g. storing a freshly generated
// qrCodeUrl or a single image URL without touching the rest of the document.
func (r *firestoreGymRepository) Update(ctx context.Context, gymID string, fields map[string]interface{}) error {
	if gymID == "" {
		return errors.New("gymID cannot be empty for Update operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	_, err := r.client.Collection(gymsCollection).Doc(gymID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("gym with ID '%s' not found for update: %w", gymID, ErrNotFound)
		}
		return fmt.Errorf("failed to update gym with ID '%s': %w", gymID, err)
	}
	return nil
}

// Delete removes a gym document.
func (r *firestoreGymRepository) Delete(ctx context.Context, gymID string) error {
	if gymID == "" {
		return errors.New("gymID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(gymsCollection).Doc(gymID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("gym with ID '%s' not found for deletion: %w", gymID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete gym with ID '%s': %w", gymID, err)
	}
	return nil
}
