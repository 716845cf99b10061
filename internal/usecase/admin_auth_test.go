package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dataitjobs/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := jwt.NewHMACService("secret", time.Hour, "test")
	uc := NewAdminAuth("admin", string(hash), svc)

	tok, err := uc.Login(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := svc.ValidateToken(tok.AccessToken)
	if err != nil || claims.Role != jwt.RoleAdmin {
		t.Fatalf("unexpected claims %+v err=%v", claims, err)
	}

	if _, err := uc.Login(context.Background(), "admin", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := uc.Login(context.Background(), "root", "s3cret"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong user, got %v", err)
	}
	if _, err := uc.Login(context.Background(), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdminAuth_NoPasswordConfigured(t *testing.T) {
	uc := NewAdminAuth("admin", "", jwt.NewHMACService("secret", time.Hour, "test"))
	if _, err := uc.Login(context.Background(), "admin", "anything"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
