package models

import "time"

// AdminAuditLog records one privileged admin action. Entries are written
// to the "AdminAuditLogs" collection and, when a message queue is
// configured, published as events for external consumers.
type AdminAuditLog struct {
	ID        string    `json:"id" firestore:"-"`
	Action    string    `json:"action" firestore:"action"`         // e.g. "user.create", "organization.delete"
	Actor     string    `json:"actor" firestore:"actor"`           // admin UID or email
	Target    string    `json:"target" firestore:"target"`         // affected entity id/name
	Detail    string    `json:"detail,omitempty" firestore:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
}
