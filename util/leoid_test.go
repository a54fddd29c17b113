package util

import (
	"strings"
	"testing"
)

func never(string) (bool, error) { return false, nil }

func TestGenerateLeoIDFormat(t *testing.T) {
	id, err := GenerateLeoID(never)
	if err != nil {
		t.Fatalf("GenerateLeoID returned error: %v", err)
	}
	if !strings.HasPrefix(id, "LEO_") {
		t.Errorf("expected LEO_ prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "LEO_")
	if len(suffix) != 10 {
		t.Errorf("expected 10-char suffix, got %d (%q)", len(suffix), suffix)
	}
	for _, ch := range suffix {
		if !strings.ContainsRune(leoIDAlphabet, ch) {
			t.Errorf("suffix contains %q, outside alphabet", ch)
		}
	}
}

func TestGenerateLeoIDRetriesOnCollision(t *testing.T) {
	collisions := 3
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		return calls <= collisions, nil
	}

	id, err := GenerateLeoID(exists)
	if err != nil {
		t.Fatalf("GenerateLeoID returned error: %v", err)
	}
	if calls != collisions+1 {
		t.Errorf("expected %d existence checks, got %d", collisions+1, calls)
	}
	if id == "" {
		t.Error("expected a non-empty ID after retries")
	}
}

func TestGenerateLeoIDGrowsSuffixAfterRepeatedCollisions(t *testing.T) {
	calls := 0
	exists := func(string) (bool, error) {
		calls++
		// Force collisions through the first two length tiers.
		return calls <= 2*attemptsPerLength, nil
	}

	id, err := GenerateLeoID(exists)
	if err != nil {
		t.Fatalf("GenerateLeoID returned error: %v", err)
	}
	suffix := strings.TrimPrefix(id, "LEO_")
	if len(suffix) != leoIDLength+2 {
		t.Errorf("expected suffix to grow to %d chars, got %d (%q)",
			leoIDLength+2, len(suffix), suffix)
	}
}

func TestGenerateLeoIDExhaustion(t *testing.T) {
	always := func(string) (bool, error) { return true, nil }
	if _, err := GenerateLeoID(always); err != ErrLeoIDExhausted {
		t.Errorf("expected ErrLeoIDExhausted, got %v", err)
	}
}
