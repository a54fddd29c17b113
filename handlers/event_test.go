package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateEventValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"description": "no title"}`},
		{"negative cost", `{"title": "Chess", "cost": -10}`},
	}

	h := NewEventHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodPost, "/api/events", tt.body)
			h.Create(c)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d (body %s)", w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateEventStatusRejectsUnknownStatus(t *testing.T) {
	tests := []string{
		`{"status": "archived"}`,
		`{"status": "OPEN"}`,
		`{"status": ""}`,
		`{}`,
	}

	h := NewEventHandler(nil)
	for _, body := range tests {
		c, w := newTestContext(t, http.MethodPatch, "/api/events/e-1/status", body)
		c.Params = gin.Params{{Key: "id", Value: "e-1"}}
		h.UpdateStatus(c)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}
