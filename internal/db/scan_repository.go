package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// scansCollection is the canonical scan-event collection. Earlier versions
// of the dashboard also read "QRs", which never received writes; "QR" is
// the name the mobile app writes to and the only one used here.
const scansCollection = "QR"

// firestoreScanRepository implements ScanRepository using Firestore.
type firestoreScanRepository struct {
	client *firestore.Client
}

// NewFirestoreScanRepository creates a new instance of firestoreScanRepository.
func NewFirestoreScanRepository(client *firestore.Client) ScanRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ScanRepository.")
	}
	return &firestoreScanRepository{client: client}
}

// List retrieves all scan events. Scans are append-only; filtering and
// bucketing happen in the analytics layer on the fetched set.
func (r *firestoreScanRepository) List(ctx context.Context) ([]*models.QRScan, error) {
	iter := r.client.Collection(scansCollection).Documents(ctx)
	defer iter.Stop()

	var scans []*models.QRScan
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate scans: %w", err)
		}

		var scan models.QRScan
		if err := doc.DataTo(&scan); err != nil {
			log.Printf("Error decoding scan data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		scan.QRID = doc.Ref.ID
		scans = append(scans, &scan)
	}
	return scans, nil
}
