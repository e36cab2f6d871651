package db

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	fbstorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/config"
)

// Clients bundles the Firebase platform handles the repositories and
// services depend on. It is constructed once at startup and passed down
// explicitly; nothing in this package keeps package-level state.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
	Storage   *fbstorage.Client
}

// NewClients initializes the Firebase Admin SDK and returns the Firestore,
// Auth, Cloud Messaging and Storage clients. Credentials come from a
// service-account file path or a base64-encoded JSON blob; with neither
// set LoadConfig rejects the config before we get here.
func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	if cfg == nil {
		return nil, fmt.Errorf("NewClients: config cannot be nil")
	}

	var credsOption option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		credsOption = option.WithCredentialsFile(cfg.GoogleApplicationCredentials)
	} else {
		decodedJSON, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		credsOption = option.WithCredentialsJSON(decodedJSON)
	}

	appConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	app, err := firebase.NewApp(ctx, appConfig, credsOption)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("app.Messaging: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("app.Storage: %w", err)
	}

	return &Clients{
		Firestore: fsClient,
		Auth:      authClient,
		Messaging: msgClient,
		Storage:   storageClient,
	}, nil
}

// Close releases the underlying connections. Only the Firestore client
// holds resources that need explicit closing.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
