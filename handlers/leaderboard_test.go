package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestUpsertScoreValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing score", `{"participantId": "u-1"}`},
		{"missing participant", `{"score": 10}`},
		{"non-numeric score", `{"participantId": "u-1", "score": "ten"}`},
	}

	h := NewLeaderboardHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodPatch, "/api/events/e-1/leaderboard", tt.body)
			c.Params = gin.Params{{Key: "id", Value: "e-1"}}
			h.UpsertScore(c)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestJoinEventRequiresEventID(t *testing.T) {
	h := NewCoordinatorHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/api/event-coordinators", `{}`)
	h.Join(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing eventId, got %d", w.Code)
	}
}

func TestLeaveByEventRequiresEventID(t *testing.T) {
	h := NewCoordinatorHandler(nil)
	c, w := newTestContext(t, http.MethodDelete, "/api/event-coordinators", ``)
	h.LeaveByEvent(c)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing eventId query, got %d", w.Code)
	}
}
