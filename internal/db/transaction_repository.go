package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

const transactionsCollection = "Transactions"

// firestoreTransactionRepository implements TransactionRepository using Firestore.
type firestoreTransactionRepository struct {
	client *firestore.Client
}

// NewFirestoreTransactionRepository creates a new instance of firestoreTransactionRepository.
func NewFirestoreTransactionRepository(client *firestore.Client) TransactionRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for TransactionRepository.")
	}
	return &firestoreTransactionRepository{client: client}
}

// List retrieves all transaction documents.
func (r *firestoreTransactionRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	iter := r.client.Collection(transactionsCollection).Documents(ctx)
	defer iter.Stop()

	var txns []*models.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate transactions: %w", err)
		}

		var txn models.Transaction
		if err := doc.DataTo(&txn); err != nil {
			log.Printf("Error decoding transaction data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		txn.TransactionID = doc.Ref.ID
		txns = append(txns, &txn)
	}
	return txns, nil
}
