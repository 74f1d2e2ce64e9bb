package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andyrosty/diet-fitness/models"
)

// UserRepository defines the interface for interacting with user records.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by GORM.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Username, err)
	}
	return nil
}

// FindByUsername returns (nil, nil) when no matching user exists.
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by username %q: %w", username, err)
	}
	return &user, nil
}

// FindByEmail returns (nil, nil) when no matching user exists.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email %q: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// Delete removes the user together with every plan they own and its day
// rows, all inside one transaction. The explicit child deletes keep the
// behavior identical across the postgres and SQLite backends regardless
// of foreign-key enforcement settings.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var planIDs []uint
		err := tx.Model(&models.UserPlan{}).
			Where("user_id = ?", id).
			Pluck("id", &planIDs).Error
		if err != nil {
			return fmt.Errorf("failed to list plans for user %d: %w", id, err)
		}
		if len(planIDs) > 0 {
			if err := tx.Where("user_plan_id IN ?", planIDs).Delete(&models.WorkoutDay{}).Error; err != nil {
				return fmt.Errorf("failed to delete workout days for user %d: %w", id, err)
			}
			if err := tx.Where("user_plan_id IN ?", planIDs).Delete(&models.DietDay{}).Error; err != nil {
				return fmt.Errorf("failed to delete diet days for user %d: %w", id, err)
			}
			if err := tx.Where("user_id = ?", id).Delete(&models.UserPlan{}).Error; err != nil {
				return fmt.Errorf("failed to delete plans for user %d: %w", id, err)
			}
		}
		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user %d: %w", id, err)
		}
		return nil
	})
}
