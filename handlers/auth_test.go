package handlers

import (
	"net/http"
	"testing"
)

func TestLoginValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"missing email", `{"role": "student"}`, http.StatusBadRequest},
		{"blank email", `{"role": "student", "email": "   "}`, http.StatusBadRequest},
		{"unknown role", `{"role": "mentor", "email": "a@b.com"}`, http.StatusBadRequest},
	}

	h := NewAuthHandler(nil, "test-secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodPost, "/api/auth/login", tt.body)
			h.Login(c)
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing name", `{"email": "a@b.com", "rollNo": "42", "phone": "123"}`},
		{"missing rollNo", `{"email": "a@b.com", "name": "A", "phone": "123"}`},
		{"missing phone", `{"email": "a@b.com", "name": "A", "rollNo": "42"}`},
		{"blank email", `{"email": " ", "name": "A", "rollNo": "42", "phone": "123"}`},
	}

	h := NewAuthHandler(nil, "test-secret")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t, http.MethodPost, "/api/auth/register", tt.body)
			h.Register(c)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d (body %s)", w.Code, w.Body.String())
			}
		})
	}
}
