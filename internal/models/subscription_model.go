package models

// SubscriptionPlan is a document in the "Subscriptions" collection.
// Price and SubscriptionDays are stored as strings by the mobile backend;
// kept as-is to avoid rewriting documents the app still reads.
type SubscriptionPlan struct {
	SubscriptionID   string `json:"SubscriptionID" firestore:"SubscriptionID"`
	Name             string `json:"name" firestore:"name"`
	Price            string `json:"price" firestore:"price"`
	SubscriptionDays string `json:"SubscriptionDays" firestore:"SubscriptionDays"`
}
