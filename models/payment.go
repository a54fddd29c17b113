package models

import "time"

// Payment is an append-only record of a confirmed payment. amount
// snapshots the event's cost at the time the payment was recorded.
type Payment struct {
	ID              string    `json:"id"`
	ParticipationID string    `json:"participationId"`
	TransactionID   *string   `json:"transactionId,omitempty"`
	Screenshot      *string   `json:"screenshot,omitempty"`
	Amount          float64   `json:"amount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreatePaymentRequest struct {
	ParticipationID string  `json:"participationId"`
	TransactionID   *string `json:"transactionId"`
	Screenshot      *string `json:"screenshot"`
}

// EventRevenue is one event's slice of the admin payment summary.
type EventRevenue struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
	Title  string  `json:"title"`
}

type PaymentSummary struct {
	Total   float64                 `json:"total"`
	ByEvent map[string]EventRevenue `json:"byEvent"`
}
