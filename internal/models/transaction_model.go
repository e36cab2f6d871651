package models

// TransactionStatusPaid is the only status that counts towards revenue.
const TransactionStatusPaid = "Paid"

// Transaction is a payment event from the "Transactions" collection.
//
// UpdatedAt is deliberately untyped: historical documents carry it as an
// ISO-8601 string, newer ones as a Firestore timestamp. The analytics
// layer normalizes both through ParseRecordTime rather than trusting the
// stored shape.
type Transaction struct {
	TransactionID string      `json:"transactionId" firestore:"transactionId"`
	UserID        string      `json:"UserId" firestore:"UserId"`
	Amount        float64     `json:"Amount" firestore:"Amount"`
	OrderID       string      `json:"OrderId" firestore:"OrderId"`
	Status        string      `json:"Status" firestore:"Status"`
	Subscription  string      `json:"Subscription" firestore:"Subscription"`
	UpdatedAt     interface{} `json:"UpdatedAt" firestore:"UpdatedAt"`
}
