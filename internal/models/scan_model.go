package models

// QRScan is one check-in event from the "QR" collection. Scans are
// append-only from the dashboard's point of view; the gym fields are a
// snapshot taken at scan time, not a live join against "Gyms".
type QRScan struct {
	QRID            string `json:"QRID" firestore:"QRID"`
	UserID          string `json:"UserID" firestore:"UserID"`
	GymName         string `json:"gymName" firestore:"gymName"`
	GymAddress      string `json:"gymAddress" firestore:"gymAddress"`
	GymSubscription string `json:"gymSubscription" firestore:"gymSubscription"`
	Time            string `json:"Time" firestore:"Time"` // ISO-8601 string written by the mobile app
}
