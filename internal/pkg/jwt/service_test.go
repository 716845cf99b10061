package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("secret", time.Hour, "dataitjobs")
	tok, exp, err := svc.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exp.IsZero() {
		t.Fatalf("expected expiry")
	}

	c, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Username != "admin" || c.Role != RoleAdmin || c.Subject != "admin" || c.ID == "" {
		t.Fatalf("unexpected claims: %+v", c)
	}
}

func TestHMACService_Expired(t *testing.T) {
	svc := NewHMACService("secret", time.Minute, "dataitjobs")
	base := time.Now()
	svc.now = func() time.Time { return base }
	tok, _, err := svc.GenerateAccessToken("admin", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Hour) }
	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	tok, _, _ := NewHMACService("a", time.Hour, "x").GenerateAccessToken("admin", RoleAdmin)
	if _, err := NewHMACService("b", time.Hour, "x").ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, _, err := NewHMACService("", time.Hour, "x").GenerateAccessToken("admin", RoleAdmin); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without secret, got %v", err)
	}
}
