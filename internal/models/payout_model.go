package models

import "time"

// Payout request lifecycle. Pending requests move to exactly one of the
// terminal states; there is no reversal path.
const (
	PayoutStatusPending  = "pending"
	PayoutStatusApproved = "approved"
	PayoutStatusRejected = "rejected"
)

// GymPayoutRequest is a document in the "GymsPayoutRequests" collection.
type GymPayoutRequest struct {
	ID               string    `json:"id" firestore:"-"`
	GymID            string    `json:"gymId" firestore:"gymId"`
	GymName          string    `json:"gymName" firestore:"gymName"`
	GymEmail         string    `json:"gymEmail" firestore:"gymEmail"`
	WithdrawalAmount float64   `json:"withdrawalAmount" firestore:"withdrawalAmount"`
	Status           string    `json:"status" firestore:"status"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
	ApprovedAt       string    `json:"approvedAt,omitempty" firestore:"approvedAt,omitempty"`
	ApprovedBy       string    `json:"approvedBy,omitempty" firestore:"approvedBy,omitempty"`
	RejectedAt       string    `json:"rejectedAt,omitempty" firestore:"rejectedAt,omitempty"`
	RejectedBy       string    `json:"rejectedBy,omitempty" firestore:"rejectedBy,omitempty"`
}

// IsPending reports whether the request can still be actioned.
func (p *GymPayoutRequest) IsPending() bool {
	return p.Status == PayoutStatusPending
}
