package models

import "testing"

func TestIsValidEventStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"open", true},
		{"ongoing", true},
		{"closed", true},
		{"completed", true},
		{"", false},
		{"Open", false},
		{"archived", false},
		{"settled", false},
	}
	for _, tt := range tests {
		if got := IsValidEventStatus(tt.status); got != tt.want {
			t.Errorf("IsValidEventStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
