package core

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// AuthClient is the slice of the Firebase Auth admin surface the services
// depend on. The concrete *auth.Client satisfies it.
type AuthClient interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}
