package handlers

import (
	"math"
	"net/http"
	"testing"
)

func TestBuildPaymentSummary(t *testing.T) {
	rows := []eventRevenueRow{
		{EventID: "e-1", Title: "Quiz Night", Cost: 50, Count: 3},
		{EventID: "e-2", Title: "Free Workshop", Cost: 0, Count: 10},
		{EventID: "e-3", Title: "Hackathon", Cost: 120.5, Count: 2},
	}

	summary := buildPaymentSummary(rows)

	wantTotal := 3*50 + 2*120.5
	if math.Abs(summary.Total-wantTotal) > 1e-9 {
		t.Errorf("total = %v, want %v", summary.Total, wantTotal)
	}
	if len(summary.ByEvent) != 3 {
		t.Fatalf("expected 3 events in summary, got %d", len(summary.ByEvent))
	}
	quiz := summary.ByEvent["e-1"]
	if quiz.Count != 3 || quiz.Amount != 150 || quiz.Title != "Quiz Night" {
		t.Errorf("unexpected entry for e-1: %+v", quiz)
	}
	free := summary.ByEvent["e-2"]
	if free.Count != 10 || free.Amount != 0 {
		t.Errorf("unexpected entry for e-2: %+v", free)
	}
}

func TestBuildPaymentSummaryEmpty(t *testing.T) {
	summary := buildPaymentSummary(nil)
	if summary.Total != 0 {
		t.Errorf("expected zero total, got %v", summary.Total)
	}
	if summary.ByEvent == nil || len(summary.ByEvent) != 0 {
		t.Errorf("expected empty (non-nil) byEvent map, got %v", summary.ByEvent)
	}
}

func TestCreatePaymentMissingParticipationID(t *testing.T) {
	h := NewPaymentHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/api/payments", `{}`)

	h.Create(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing participationId, got %d", w.Code)
	}
}
