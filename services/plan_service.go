package services

import (
	"context"
	"fmt"

	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/models"
	"github.com/andyrosty/diet-fitness/repository"
)

// PlanService runs the generate-estimate-persist pipeline and exposes
// CRUD over a user's stored plans.
type PlanService interface {
	CreatePlan(ctx context.Context, userID uint, input models.UserInput) (*models.CoachResult, error)
	ListPlans(ctx context.Context, userID uint) ([]*models.UserPlan, error)
	UpdatePlan(ctx context.Context, userID, planID uint, update models.PlanUpdate) (*models.UserPlan, error)
	DeletePlan(ctx context.Context, userID, planID uint) error
}

type planService struct {
	generator PlanGenerator
	estimator GoalEstimator
	planRepo  repository.PlanRepository
}

// NewPlanService creates a new PlanService. The generator and estimator
// are injected so tests can substitute doubles for the external provider.
func NewPlanService(generator PlanGenerator, estimator GoalEstimator, planRepo repository.PlanRepository) PlanService {
	return &planService{
		generator: generator,
		estimator: estimator,
		planRepo:  planRepo,
	}
}

// CreatePlan sequences the pipeline: generate the schedules, estimate
// days to goal, attach the estimate, then persist the plan header plus
// all 14 day rows under the user. There are no retries; a failure at any
// stage fails the whole request and nothing is stored.
func (s *planService) CreatePlan(ctx context.Context, userID uint, input models.UserInput) (*models.CoachResult, error) {
	result, err := s.generator.GeneratePlan(ctx, input)
	if err != nil {
		return nil, err
	}

	days, err := s.estimator.EstimateDaysToGoal(ctx, result)
	if err != nil {
		return nil, err
	}
	result.EstimatedDaysToGoal = days

	plan := &models.UserPlan{
		UserID:              userID,
		CurrentWeight:       input.CurrentWeight,
		WeightGoal:          input.WeightGoal,
		WorkoutFrequency:    input.WorkoutFrequency,
		EstimatedDaysToGoal: days,
	}
	workouts := make([]models.WorkoutDay, 0, len(result.WorkoutPlan))
	for _, entry := range result.WorkoutPlan {
		workouts = append(workouts, models.WorkoutDay{
			Day:      string(entry.Day),
			Activity: entry.Activity,
		})
	}
	diets := make([]models.DietDay, 0, len(result.DietPlan))
	for _, entry := range result.DietPlan {
		diets = append(diets, models.DietDay{
			Day:   string(entry.Day),
			Meals: entry.Meals,
		})
	}

	if err := s.planRepo.CreatePlanWithDays(ctx, plan, workouts, diets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	logger.Infof("completed fitness pipeline for user %d, plan %d, %d days to goal", userID, plan.ID, days)
	return result, nil
}

// ListPlans returns the user's stored plans with their day rows.
func (s *planService) ListPlans(ctx context.Context, userID uint) ([]*models.UserPlan, error) {
	return s.planRepo.GetPlansByUserID(ctx, userID)
}

// UpdatePlan applies only the fields supplied in the update; nil fields
// are left untouched. The stored estimate is deliberately not recomputed.
// Fails with ErrPlanNotFound when the plan is missing or owned by
// another user.
func (s *planService) UpdatePlan(ctx context.Context, userID, planID uint, update models.PlanUpdate) (*models.UserPlan, error) {
	plan, err := s.planRepo.GetPlanByIDForUser(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	fields := make(map[string]interface{}, 3)
	if update.CurrentWeight != nil {
		fields["current_weight"] = *update.CurrentWeight
	}
	if update.WeightGoal != nil {
		fields["weight_goal"] = *update.WeightGoal
	}
	if update.WorkoutFrequency != nil {
		fields["workout_frequency"] = *update.WorkoutFrequency
	}

	if len(fields) > 0 {
		if err := s.planRepo.UpdatePlanFields(ctx, planID, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.planRepo.GetPlanByIDForUser(ctx, planID, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPlanNotFound
	}
	return updated, nil
}

// DeletePlan removes the plan and all its day rows. Fails with
// ErrPlanNotFound under the same ownership check as UpdatePlan.
func (s *planService) DeletePlan(ctx context.Context, userID, planID uint) error {
	plan, err := s.planRepo.GetPlanByIDForUser(ctx, planID, userID)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrPlanNotFound
	}
	if err := s.planRepo.DeletePlan(ctx, planID); err != nil {
		return err
	}
	logger.Infof("deleted plan %d for user %d", planID, userID)
	return nil
}
