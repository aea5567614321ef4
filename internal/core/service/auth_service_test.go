package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cluedotech/timesheetpro/internal/core/domain"
	"github.com/cluedotech/timesheetpro/internal/core/store"
)

func newAuth(t *testing.T) *AuthService {
	t.Helper()
	st := store.Open(context.Background(), nil, zerolog.Nop())
	return NewAuthService(st, "test-secret", time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	user, err := a.Register(ctx, "alex.doe@example.com", "hunter2secret")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 1 || user.Role != domain.RoleContractor {
		t.Errorf("unexpected user %+v", user)
	}

	token, logged, err := a.Login(ctx, "alex.doe@example.com", "hunter2secret")
	if err != nil {
		t.Fatal(err)
	}
	if logged.ID != 1 {
		t.Errorf("logged in as %d", logged.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"].(float64) != 1 {
		t.Errorf("user_id claim = %v", claims["user_id"])
	}
	if claims["role"] != "Contractor" {
		t.Errorf("role claim = %v", claims["role"])
	}
	if claims["name"] != "Alex Doe" {
		t.Errorf("name claim = %v", claims["name"])
	}
}

func TestRegister_UnknownEmail(t *testing.T) {
	a := newAuth(t)
	if _, err := a.Register(context.Background(), "nobody@example.com", "password123"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRegister_Twice(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "alex.doe@example.com", "hunter2secret"); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Register(ctx, "alex.doe@example.com", "different-pass"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_Failures(t *testing.T) {
	a := newAuth(t)
	ctx := context.Background()

	// Directory user without registered credentials.
	if _, _, err := a.Login(ctx, "jane.roe@example.com", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := a.Register(ctx, "alex.doe@example.com", "hunter2secret"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := a.Login(ctx, "alex.doe@example.com", "wrong-password"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := a.Login(ctx, "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}
