package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/models"
)

// PlanRepository defines the interface for interacting with stored plans
// and their per-day rows. All lookups are scoped to the owning user.
type PlanRepository interface {
	CreatePlanWithDays(ctx context.Context, plan *models.UserPlan, workouts []models.WorkoutDay, diets []models.DietDay) error
	GetPlansByUserID(ctx context.Context, userID uint) ([]*models.UserPlan, error)
	GetPlanByIDForUser(ctx context.Context, planID, userID uint) (*models.UserPlan, error)
	UpdatePlanFields(ctx context.Context, planID uint, fields map[string]interface{}) error
	DeletePlan(ctx context.Context, planID uint) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository backed by GORM.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// CreatePlanWithDays inserts the plan header plus all of its workout and
// diet rows inside one transaction. The header is created first so its
// generated ID can be stamped onto the day rows; any failure rolls the
// whole write back.
func (r *planRepository) CreatePlanWithDays(ctx context.Context, plan *models.UserPlan, workouts []models.WorkoutDay, diets []models.DietDay) error {
	if plan == nil {
		return errors.New("plan cannot be nil")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return fmt.Errorf("failed to create plan for user %d: %w", plan.UserID, err)
		}
		for i := range workouts {
			workouts[i].UserPlanID = plan.ID
		}
		for i := range diets {
			diets[i].UserPlanID = plan.ID
		}
		if len(workouts) > 0 {
			if err := tx.Create(&workouts).Error; err != nil {
				return fmt.Errorf("failed to create workout days for plan %d: %w", plan.ID, err)
			}
		}
		if len(diets) > 0 {
			if err := tx.Create(&diets).Error; err != nil {
				return fmt.Errorf("failed to create diet days for plan %d: %w", plan.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	plan.WorkoutDays = workouts
	plan.DietDays = diets
	logger.Infof("created plan %d for user %d with %d workout and %d diet rows",
		plan.ID, plan.UserID, len(workouts), len(diets))
	return nil
}

// GetPlansByUserID returns the user's plans, newest first, with day rows
// preloaded.
func (r *planRepository) GetPlansByUserID(ctx context.Context, userID uint) ([]*models.UserPlan, error) {
	var plans []*models.UserPlan
	err := r.db.WithContext(ctx).
		Preload("WorkoutDays").
		Preload("DietDays").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve plans for user %d: %w", userID, err)
	}
	return plans, nil
}

// GetPlanByIDForUser returns (nil, nil) when the plan does not exist or
// is owned by someone else.
func (r *planRepository) GetPlanByIDForUser(ctx context.Context, planID, userID uint) (*models.UserPlan, error) {
	var plan models.UserPlan
	err := r.db.WithContext(ctx).
		Preload("WorkoutDays").
		Preload("DietDays").
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve plan %d: %w", planID, err)
	}
	return &plan, nil
}

// UpdatePlanFields applies only the supplied columns to the plan header.
func (r *planRepository) UpdatePlanFields(ctx context.Context, planID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.UserPlan{}).
		Where("id = ?", planID).
		Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update plan %d: %w", planID, err)
	}
	return nil
}

// DeletePlan removes the plan header and its day rows in one
// transaction. The explicit child deletes keep the behavior identical
// across the postgres and SQLite backends regardless of foreign-key
// enforcement settings.
func (r *planRepository) DeletePlan(ctx context.Context, planID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_plan_id = ?", planID).Delete(&models.WorkoutDay{}).Error; err != nil {
			return fmt.Errorf("failed to delete workout days for plan %d: %w", planID, err)
		}
		if err := tx.Where("user_plan_id = ?", planID).Delete(&models.DietDay{}).Error; err != nil {
			return fmt.Errorf("failed to delete diet days for plan %d: %w", planID, err)
		}
		if err := tx.Delete(&models.UserPlan{}, planID).Error; err != nil {
			return fmt.Errorf("failed to delete plan %d: %w", planID, err)
		}
		return nil
	})
}
