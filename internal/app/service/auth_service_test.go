package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klantroef/medialink/internal/app/model"
	httpUtil "github.com/klantroef/medialink/internal/http/util"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() *httpUtil.JWTManager {
	return httpUtil.NewJWTManager([]byte("test-secret-at-least-32-characters!!"), time.Hour)
}

func TestAuthService_Signup(t *testing.T) {
	var created *model.AdminUser
	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.AdminUser) error {
			user.ID = 1
			created = user
			return nil
		},
	}

	svc := NewAuthService(users, testTokens())

	user, err := svc.Signup(context.Background(), "Admin@Example.com ", "hunter22")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "admin@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if created == nil || created.HashedPassword == "hunter22" {
		t.Fatal("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.HashedPassword), []byte("hunter22")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_SignupShortPassword(t *testing.T) {
	users := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.AdminUser) error {
			t.Fatal("weak password must be rejected before any side effect")
			return nil
		},
	}

	svc := NewAuthService(users, testTokens())

	_, err := svc.Signup(context.Background(), "admin@example.com", "short")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	users := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return &model.AdminUser{ID: 1, Email: email}, nil
		},
	}

	svc := NewAuthService(users, testTokens())

	_, err := svc.Signup(context.Background(), "admin@example.com", "hunter22")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	users := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return &model.AdminUser{ID: 9, Email: email, HashedPassword: string(hashed)}, nil
		},
	}

	tokens := testTokens()
	svc := NewAuthService(users, tokens)

	token, user, err := svc.Login(context.Background(), "admin@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != 9 {
		t.Fatalf("unexpected user id %d", user.ID)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.UserID != 9 || claims.Email != "admin@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	users := &mockUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*model.AdminUser, error) {
			return &model.AdminUser{ID: 9, Email: email, HashedPassword: string(hashed)}, nil
		},
	}

	svc := NewAuthService(users, testTokens())

	_, _, err = svc.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockUserRepository{}, testTokens())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
