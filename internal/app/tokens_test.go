package app

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokens_RoundTrip(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)
	raw, err := tok.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if strings.Count(raw, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", raw)
	}
	id, err := tok.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}
}

func TestTokens_Rejects(t *testing.T) {
	tok := NewTokens("s3cret", time.Hour)
	raw, _ := tok.Issue(1)

	other := NewTokens("different", time.Hour)
	if _, err := other.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign key: expected ErrInvalidToken, got %v", err)
	}

	expired := NewTokens("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Verify(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: expected ErrInvalidToken, got %v", err)
	}

	if _, err := tok.Verify(""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("empty: expected ErrInvalidToken, got %v", err)
	}
	if _, err := tok.Verify(raw + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokens_DefaultTTL(t *testing.T) {
	if tok := NewTokens("x", 0); tok.ttl != TokenTTL {
		t.Fatalf("expected default ttl %v, got %v", TokenTTL, tok.ttl)
	}
}
