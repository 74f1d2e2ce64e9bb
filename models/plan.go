package models

import "time"

// UserPlan is one stored fitness/diet program snapshot for a user.
// The estimate is set once by the generation pipeline and is not
// recomputed when the plan is later updated.
type UserPlan struct {
	ID                  uint         `gorm:"primarykey" json:"id"`
	UserID              uint         `gorm:"index;not null" json:"user_id"`
	CurrentWeight       string       `json:"current_weight"`
	WeightGoal          string       `json:"weight_goal"`
	WorkoutFrequency    string       `json:"workout_frequency"`
	EstimatedDaysToGoal int          `json:"estimated_days_to_goal"`
	CreatedAt           time.Time    `gorm:"autoCreateTime" json:"created_at"`
	WorkoutDays         []WorkoutDay `gorm:"foreignKey:UserPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"workout_days"`
	DietDays            []DietDay    `gorm:"foreignKey:UserPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"diet_days"`
}

// TableName specifies the table name for the UserPlan model.
func (UserPlan) TableName() string {
	return "user_plans"
}

// WorkoutDay is one weekday's activity within a plan. Immutable once
// created; removed only via the parent plan's cascade.
type WorkoutDay struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	UserPlanID uint   `gorm:"index;not null" json:"user_plan_id"`
	Day        string `gorm:"type:varchar(16);not null" json:"day"`
	Activity   string `gorm:"type:text" json:"activity"`
}

// TableName specifies the table name for the WorkoutDay model.
func (WorkoutDay) TableName() string {
	return "workout_days"
}

// DietDay is one weekday's meal text within a plan. Same lifecycle as
// WorkoutDay.
type DietDay struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	UserPlanID uint   `gorm:"index;not null" json:"user_plan_id"`
	Day        string `gorm:"type:varchar(16);not null" json:"day"`
	Meals      string `gorm:"type:text" json:"meals"`
}

// TableName specifies the table name for the DietDay model.
func (DietDay) TableName() string {
	return "diet_days"
}
