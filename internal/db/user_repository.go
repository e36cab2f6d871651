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

// usersCollection is the canonical collection name. The mobile backend
// created it as "User" (singular); do not "fix" the name here.
const usersCollection = "User"

// ErrNotFound is returned by every repository in this package when a
// document does not exist.
var ErrNotFound = errors.New("document not found")

// firestoreUserRepository implements UserRepository using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document. The user.UserID (Firebase Auth UID) is
// used as the Firestore document ID so auth identity and profile stay linked.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		return errors.New("user ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UserID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with ID '%s' already exists: %w", user.UserID, err)
		}
		return fmt.Errorf("failed to create user with ID '%s': %w", user.UserID, err)
	}
	return nil
}

// GetByID retrieves a user document by its ID (Firebase Auth UID).
func (r *firestoreUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with ID '%s' not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with ID '%s': %w", userID, err)
	}

	var user models.User
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for ID '%s': %w", userID, err)
	}
	user.UserID = docSnap.Ref.ID

	return &user, nil
}

// List retrieves all user documents. The dashboard works on the full
// collection per page load; member counts are small enough for that.
func (r *firestoreUserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.collect(ctx, r.client.Collection(usersCollection).Query)
}

// ListByOrganization retrieves every user whose Organization field equals
// the given name. Used by the derived organization views and by bulk delete.
func (r *firestoreUserRepository) ListByOrganization(ctx context.Context, organization string) ([]*models.User, error) {
	if organization == "" {
		return nil, errors.New("organization cannot be empty for ListByOrganization operation")
	}
	query := r.client.Collection(usersCollection).Where("Organization", "==", organization)
	return r.collect(ctx, query)
}

func (r *firestoreUserRepository) collect(ctx context.Context, query firestore.Query) ([]*models.User, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate users: %w", err)
		}

		var user models.User
		if err := doc.DataTo(&user); err != nil {
			// A malformed document degrades to exclusion, never aborts the read.
			log.Printf("Error decoding user data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		user.UserID = doc.Ref.ID
		users = append(users, &user)
	}
	return users, nil
}

// Update applies a partial field update to an existing user document.
func (r *firestoreUserRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) error {
	if userID == "" {
		return errors.New("user ID cannot be empty for Update operation")
	}
	if len(fields) == 0 {
		return errors.New("no fields to update")
	}

	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "UpdatedAt", Value: firestore.ServerTimestamp})

	_, err := r.client.Collection(usersCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with ID '%s' not found for update: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("failed to update user with ID '%s': %w", userID, err)
	}
	return nil
}

// Delete removes a user document. Deleting the Firebase Auth identity is
// the service layer's job; this only touches the profile document.
func (r *firestoreUserRepository) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("userID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(userID).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user with ID '%s': %w", userID, err)
	}
	return nil
}
