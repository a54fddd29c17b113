package models

// MaxCoordinatorEvents caps how many events one coordinator may run at
// the same time, across the whole system.
const MaxCoordinatorEvents = 2

// CoordinatorAssignment links a coordinator to an event they help run.
// Name, phone and email are joined in from users for listing endpoints.
type CoordinatorAssignment struct {
	ID      string  `json:"id"`
	EventID string  `json:"eventId"`
	UserID  string  `json:"userId"`
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
}

type JoinEventRequest struct {
	EventID string `json:"eventId"`
}
