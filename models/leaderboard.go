package models

// LeaderboardEntry is one participant's score for one event, joined with
// the participant's profile fields for display.
type LeaderboardEntry struct {
	ParticipantID string  `json:"participantId"`
	Name          *string `json:"name,omitempty"`
	LeoID         *string `json:"leoId,omitempty"`
	RollNo        *string `json:"rollNo,omitempty"`
	Score         float64 `json:"score"`
}

type UpsertScoreRequest struct {
	ParticipantID string   `json:"participantId"`
	Score         *float64 `json:"score"`
}
