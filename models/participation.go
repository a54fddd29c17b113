package models

import "time"

// Payment types a student can choose at registration time.
const (
	PaymentTypePayNow       = "pay_now"
	PaymentTypePayAtArrival = "pay_at_arrival"
)

// Well-known payment statuses. The column is free-form text because
// coordinators also record values like "Paid on arrival" or
// "Paid via cash" from the dashboard.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Participation is one student's registration for one event. Name, leoId
// and rollNo are snapshotted from the user at registration time so later
// profile edits do not rewrite historic rosters.
type Participation struct {
	ID            string    `json:"id"`
	EventID       string    `json:"eventId"`
	UserID        string    `json:"userId"`
	StudentID     string    `json:"studentId"`
	Name          *string   `json:"name,omitempty"`
	LeoID         *string   `json:"leoId,omitempty"`
	RollNo        *string   `json:"rollNo,omitempty"`
	PaymentType   *string   `json:"paymentType,omitempty"`
	PaymentStatus *string   `json:"paymentStatus,omitempty"`
	Arrived       bool      `json:"arrived"`
	Screenshot    *string   `json:"screenshot,omitempty"`
	TransactionID *string   `json:"transactionId,omitempty"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

type CreateParticipationRequest struct {
	EventID       string  `json:"eventId"`
	UserID        string  `json:"userId"`
	PaymentType   string  `json:"paymentType"`
	TransactionID *string `json:"transactionId"`
	Screenshot    *string `json:"screenshot"`
}

// UpdateParticipationRequest is a partial update; at least one field must
// be present.
type UpdateParticipationRequest struct {
	Arrived       *bool   `json:"arrived"`
	PaymentStatus *string `json:"paymentStatus"`
}
