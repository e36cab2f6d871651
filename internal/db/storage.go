package db

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"

	fbstorage "firebase.google.com/go/v4/storage"
	"github.com/google/uuid"
)

// ImageStore uploads gym images to the app's default storage bucket and
// returns Firebase-style download URLs the mobile app can load directly.
type ImageStore interface {
	UploadGymImage(ctx context.Context, gymID string, slot int, contentType string, data io.Reader) (string, error)
}

type firebaseImageStore struct {
	client *fbstorage.Client
	bucket string
}

// NewFirebaseImageStore creates an ImageStore backed by the default bucket.
// bucketName is the configured STORAGE_BUCKET, reused for download URLs.
func NewFirebaseImageStore(client *fbstorage.Client, bucketName string) ImageStore {
	if client == nil {
		log.Fatal("Firebase storage client is not initialized for ImageStore.")
	}
	return &firebaseImageStore{client: client, bucket: bucketName}
}

// UploadGymImage stores the image at gyms/<gymID>/image<slot>, matching the
// paths the dashboard always used, and stamps a download token so the
// returned URL works without signed-URL infrastructure. Re-uploading the
// same slot overwrites the previous image.
func (s *firebaseImageStore) UploadGymImage(ctx context.Context, gymID string, slot int, contentType string, data io.Reader) (string, error) {
	if gymID == "" {
		return "", fmt.Errorf("gymID cannot be empty for image upload")
	}
	if slot != 1 && slot != 2 {
		return "", fmt.Errorf("image slot must be 1 or 2, got %d", slot)
	}

	bucket, err := s.client.DefaultBucket()
	if err != nil {
		return "", fmt.Errorf("failed to get default storage bucket: %w", err)
	}

	objectPath := fmt.Sprintf("gyms/%s/image%d", gymID, slot)
	token := uuid.NewString()

	writer := bucket.Object(objectPath).NewWriter(ctx)
	writer.ContentType = contentType
	writer.Metadata = map[string]string{
		// Firebase clients resolve download URLs through this token.
		"firebaseStorageDownloadTokens": token,
	}

	if _, err := io.Copy(writer, data); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write image '%s': %w", objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize image '%s': %w", objectPath, err)
	}

	downloadURL := fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucket, url.PathEscape(objectPath), token,
	)
	return downloadURL, nil
}
