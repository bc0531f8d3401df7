package util

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager([]byte("unit-test-secret-0123456789abcdef"), time.Hour)

	token, err := m.Issue(7, "admin@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager([]byte("unit-test-secret-0123456789abcdef"), time.Hour)
	verifier := NewJWTManager([]byte("another-secret-0123456789abcdef!!"), time.Hour)

	token, err := issuer.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager([]byte("unit-test-secret-0123456789abcdef"), -time.Minute)

	token, err := m.Issue(1, "a@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestJWTManager_MissingSecret(t *testing.T) {
	m := NewJWTManager(nil, time.Hour)

	if _, err := m.Issue(1, "a@example.com"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := m.Validate("whatever"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := NewJWTManager([]byte("unit-test-secret-0123456789abcdef"), time.Hour)

	if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
