package models

import "time"

// Event lifecycle statuses. Transitions are admin-only and explicit;
// "completed" is terminal.
const (
	EventStatusOpen      = "open"
	EventStatusOngoing   = "ongoing"
	EventStatusClosed    = "closed"
	EventStatusCompleted = "completed"
)

var eventStatuses = []string{
	EventStatusOpen,
	EventStatusOngoing,
	EventStatusClosed,
	EventStatusCompleted,
}

// IsValidEventStatus reports whether s is an allowed event status value.
func IsValidEventStatus(s string) bool {
	for _, status := range eventStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        *string   `json:"date,omitempty"`
	Time        *string   `json:"time,omitempty"`
	Venue       *string   `json:"venue,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Status      string    `json:"status"`
	Cost        float64   `json:"cost"`
	Rules       *string   `json:"rules,omitempty"`
	TeamSize    *int      `json:"teamSize,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EventRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Venue       *string  `json:"venue"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
	Cost        *float64 `json:"cost"`
	Rules       *string  `json:"rules"`
	TeamSize    *int     `json:"teamSize"`
}

type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}

type CompleteEventRequest struct {
	WinnerParticipantIDs []string `json:"winnerParticipantIds"`
}
