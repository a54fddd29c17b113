package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"leo-portal-backend/middleware"
)

func TestCanModifyParticipation(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		ownerID string
		caller  string
		want    bool
	}{
		{"admin can modify any row", "admin", "owner-1", "someone-else", true},
		{"coordinator can modify any row", "coordinator", "owner-1", "someone-else", true},
		{"student can modify own row", "student", "owner-1", "owner-1", true},
		{"student cannot modify another row", "student", "owner-1", "owner-2", false},
		{"empty role cannot modify another row", "", "owner-1", "owner-2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canModifyParticipation(tt.role, tt.ownerID, tt.caller); got != tt.want {
				t.Errorf("canModifyParticipation(%q, %q, %q) = %v, want %v",
					tt.role, tt.ownerID, tt.caller, got, tt.want)
			}
		})
	}
}

func TestUpdateParticipationEmptyPatchRejected(t *testing.T) {
	h := NewParticipationHandler(nil)
	c, w := newTestContext(t, http.MethodPatch, "/api/participations/p-1", `{}`)
	c.Params = gin.Params{{Key: "id", Value: "p-1"}}
	c.Set(middleware.ContextUserID, "u-1")
	c.Set(middleware.ContextUserRole, "student")

	h.Update(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty patch, got %d (body %s)", w.Code, w.Body.String())
	}
}

func TestCreateParticipationMissingEventID(t *testing.T) {
	h := NewParticipationHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/api/participations", `{}`)
	c.Set(middleware.ContextUserID, "u-1")
	c.Set(middleware.ContextUserRole, "student")

	h.Create(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing eventId, got %d", w.Code)
	}
}
