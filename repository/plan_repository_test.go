package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/andyrosty/diet-fitness/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.UserPlan{}, &models.WorkoutDay{}, &models.DietDay{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying DB: %v", err)
	}
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func weekOfDays(activity, meals string) ([]models.WorkoutDay, []models.DietDay) {
	var workouts []models.WorkoutDay
	var diets []models.DietDay
	for _, day := range models.Weekdays {
		workouts = append(workouts, models.WorkoutDay{Day: string(day), Activity: activity})
		diets = append(diets, models.DietDay{Day: string(day), Meals: meals})
	}
	return workouts, diets
}

func TestPlanRepository_CreatePlanWithDays(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "a@x.com")
	repo := NewPlanRepository(db)

	workouts, diets := weekOfDays("cardio", "oats")
	plan := &models.UserPlan{
		UserID:              user.ID,
		CurrentWeight:       "190 lbs",
		WeightGoal:          "175 lbs",
		WorkoutFrequency:    "3x per week",
		EstimatedDaysToGoal: 45,
	}

	err := repo.CreatePlanWithDays(context.Background(), plan, workouts, diets)
	assert.NoError(t, err)
	assert.NotZero(t, plan.ID)

	// Every day row points at the generated header ID.
	for _, w := range plan.WorkoutDays {
		assert.Equal(t, plan.ID, w.UserPlanID)
	}
	for _, d := range plan.DietDays {
		assert.Equal(t, plan.ID, d.UserPlanID)
	}

	loaded, err := repo.GetPlanByIDForUser(context.Background(), plan.ID, user.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.WorkoutDays, 7)
	assert.Len(t, loaded.DietDays, 7)
	assert.Equal(t, 45, loaded.EstimatedDaysToGoal)
}

func TestPlanRepository_GetPlansByUserID(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice", "a@x.com")
	bob := createTestUser(t, db, "bob", "b@x.com")
	repo := NewPlanRepository(db)

	for i := 0; i < 2; i++ {
		workouts, diets := weekOfDays("cardio", "oats")
		plan := &models.UserPlan{UserID: alice.ID}
		assert.NoError(t, repo.CreatePlanWithDays(context.Background(), plan, workouts, diets))
	}

	plans, err := repo.GetPlansByUserID(context.Background(), alice.ID)
	assert.NoError(t, err)
	assert.Len(t, plans, 2)
	assert.Len(t, plans[0].WorkoutDays, 7)
	assert.Len(t, plans[0].DietDays, 7)

	plans, err = repo.GetPlansByUserID(context.Background(), bob.ID)
	assert.NoError(t, err)
	assert.Empty(t, plans)
}

func TestPlanRepository_GetPlanByIDForUserOwnership(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice", "a@x.com")
	bob := createTestUser(t, db, "bob", "b@x.com")
	repo := NewPlanRepository(db)

	workouts, diets := weekOfDays("cardio", "oats")
	plan := &models.UserPlan{UserID: alice.ID}
	assert.NoError(t, repo.CreatePlanWithDays(context.Background(), plan, workouts, diets))

	found, err := repo.GetPlanByIDForUser(context.Background(), plan.ID, bob.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestPlanRepository_UpdatePlanFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "a@x.com")
	repo := NewPlanRepository(db)

	workouts, diets := weekOfDays("cardio", "oats")
	plan := &models.UserPlan{
		UserID:              user.ID,
		CurrentWeight:       "190 lbs",
		WeightGoal:          "175 lbs",
		WorkoutFrequency:    "3x per week",
		EstimatedDaysToGoal: 45,
	}
	assert.NoError(t, repo.CreatePlanWithDays(context.Background(), plan, workouts, diets))

	err := repo.UpdatePlanFields(context.Background(), plan.ID, map[string]interface{}{
		"current_weight": "185 lbs",
	})
	assert.NoError(t, err)

	loaded, err := repo.GetPlanByIDForUser(context.Background(), plan.ID, user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "185 lbs", loaded.CurrentWeight)
	// Untouched fields keep their values.
	assert.Equal(t, "175 lbs", loaded.WeightGoal)
	assert.Equal(t, "3x per week", loaded.WorkoutFrequency)
	assert.Equal(t, 45, loaded.EstimatedDaysToGoal)
}

func TestPlanRepository_DeletePlanRemovesDayRows(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice", "a@x.com")
	repo := NewPlanRepository(db)

	workouts, diets := weekOfDays("cardio", "oats")
	plan := &models.UserPlan{UserID: user.ID}
	assert.NoError(t, repo.CreatePlanWithDays(context.Background(), plan, workouts, diets))

	assert.NoError(t, repo.DeletePlan(context.Background(), plan.ID))

	found, err := repo.GetPlanByIDForUser(context.Background(), plan.ID, user.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)

	var workoutCount, dietCount int64
	assert.NoError(t, db.Model(&models.WorkoutDay{}).Where("user_plan_id = ?", plan.ID).Count(&workoutCount).Error)
	assert.NoError(t, db.Model(&models.DietDay{}).Where("user_plan_id = ?", plan.ID).Count(&dietCount).Error)
	assert.Zero(t, workoutCount)
	assert.Zero(t, dietCount)
}
