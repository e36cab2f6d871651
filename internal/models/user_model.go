package models

import (
	"strings"
	"time"
)

// Subscription tier values stored on User documents.
const (
	SubscriptionNone     = "None"
	SubscriptionStandard = "Standard"
	SubscriptionPremium  = "Premium"
)

// User represents a member profile document in the "User" collection.
// The document ID is the Firebase Auth UID, mirrored into UserID.
// Field names match what the mobile app and dashboard already store,
// so the tags are authoritative, not the Go names.
type User struct {
	UserID                string    `json:"UserID" firestore:"UserID"`
	Name                  string    `json:"Name" firestore:"Name"`
	Email                 string    `json:"Email" firestore:"Email"`
	PhoneNo               string    `json:"PhoneNo" firestore:"PhoneNo"`
	Gender                string    `json:"Gender" firestore:"Gender"`
	Subscription          string    `json:"Subscription" firestore:"Subscription"`
	SubscriptionStartDate time.Time `json:"SubscriptionStartDate" firestore:"SubscriptionStartDate"`
	SubscriptionEndDate   time.Time `json:"SubscriptionEndDate" firestore:"SubscriptionEndDate"`
	FCMToken              string    `json:"FCMToken" firestore:"FCMToken"`
	Verified              bool      `json:"Verified" firestore:"Verified"`
	IsUserFreezed         bool      `json:"isUserFreezed" firestore:"isUserFreezed"`
	Organization          string    `json:"Organization,omitempty" firestore:"Organization,omitempty"`
	Credits               int       `json:"credits,omitempty" firestore:"credits,omitempty"`
	CreatedAt             time.Time `json:"CreatedAt" firestore:"CreatedAt,serverTimestamp"`
	UpdatedAt             time.Time `json:"UpdatedAt" firestore:"UpdatedAt,serverTimestamp"`
}

// HasFCMToken reports whether the user can receive push notifications.
func (u *User) HasFCMToken() bool {
	return strings.TrimSpace(u.FCMToken) != ""
}
