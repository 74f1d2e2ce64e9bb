package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andyrosty/diet-fitness/models"
)

func TestUserRepository_FindByUsernameNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.FindByUsername(context.Background(), "nobody")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DeleteRemovesPlansAndDayRows(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice", "a@x.com")
	bob := createTestUser(t, db, "bob", "b@x.com")
	users := NewUserRepository(db)
	plans := NewPlanRepository(db)

	workouts, diets := weekOfDays("cardio", "oats")
	alicePlan := &models.UserPlan{UserID: alice.ID}
	assert.NoError(t, plans.CreatePlanWithDays(context.Background(), alicePlan, workouts, diets))

	workouts, diets = weekOfDays("swimming", "rice")
	bobPlan := &models.UserPlan{UserID: bob.ID}
	assert.NoError(t, plans.CreatePlanWithDays(context.Background(), bobPlan, workouts, diets))

	assert.NoError(t, users.Delete(context.Background(), alice.ID))

	gone, err := users.FindByID(context.Background(), alice.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	remaining, err := plans.GetPlansByUserID(context.Background(), alice.ID)
	assert.NoError(t, err)
	assert.Empty(t, remaining)

	var workoutCount, dietCount int64
	assert.NoError(t, db.Model(&models.WorkoutDay{}).Where("user_plan_id = ?", alicePlan.ID).Count(&workoutCount).Error)
	assert.NoError(t, db.Model(&models.DietDay{}).Where("user_plan_id = ?", alicePlan.ID).Count(&dietCount).Error)
	assert.Zero(t, workoutCount)
	assert.Zero(t, dietCount)

	// The other account and its plan survive untouched.
	kept, err := plans.GetPlanByIDForUser(context.Background(), bobPlan.ID, bob.ID)
	assert.NoError(t, err)
	assert.Len(t, kept.WorkoutDays, 7)
	assert.Len(t, kept.DietDays, 7)
}

func TestUserRepository_DeleteUserWithoutPlans(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice", "a@x.com")
	users := NewUserRepository(db)

	assert.NoError(t, users.Delete(context.Background(), alice.ID))

	gone, err := users.FindByID(context.Background(), alice.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)
}
