package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/klantroef/medialink/internal/app/repository"
	httpUtil "github.com/klantroef/medialink/internal/http/util"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	bcryptCost        = 12
)

var (
	// ErrEmailTaken signals that a user with this email already exists.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials signals a failed login without revealing whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService manages admin accounts and issues bearer tokens for them.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*model.AdminUser, error)
	Login(ctx context.Context, email, password string) (string, *model.AdminUser, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *httpUtil.JWTManager
}

// NewAuthService returns an AuthService backed by the given repository.
func NewAuthService(users repository.UserRepository, tokens *httpUtil.JWTManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, email, password string) (*model.AdminUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.AdminUser{
		Email:          email,
		HashedPassword: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.AdminUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
