package repository

import (
	"context"
	"errors"

	"github.com/klantroef/medialink/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound signals that no user exists for the given email.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the data access contract for admin users.
type UserRepository interface {
	Create(ctx context.Context, user *model.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var user model.AdminUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
