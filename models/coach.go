package models

// Weekday names a day of the week in a generated schedule.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all seven days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether w is one of the seven recognized weekdays.
func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// UserInput captures the caller's dietary preferences and fitness goals,
// the raw material for plan generation.
type UserInput struct {
	TypicalBreakfast    string `json:"typical_breakfast" binding:"required"`
	TypicalLunch        string `json:"typical_lunch" binding:"required"`
	TypicalDinner       string `json:"typical_dinner" binding:"required"`
	TypicalSnacks       string `json:"typical_snacks" binding:"required"`
	DietaryRestrictions string `json:"dietary_restrictions" binding:"required"`
	FavoriteMeals       string `json:"favorite_meals" binding:"required"`
	ComfortFoods        string `json:"comfort_foods" binding:"required"`
	EatingOutFrequency  string `json:"eating_out_frequency" binding:"required"`
	EatingOutChoices    string `json:"eating_out_choices" binding:"required"`
	CurrentWeight       string `json:"current_weight" binding:"required"`
	WeightGoal          string `json:"weight_goal" binding:"required"`
	WorkoutFrequency    string `json:"workout_frequency" binding:"required"`
}

// WorkoutEntry is one weekday's workout recommendation.
type WorkoutEntry struct {
	Day      Weekday `json:"day"`
	Activity string  `json:"activity"`
}

// DietEntry is one weekday's meal recommendation.
type DietEntry struct {
	Day   Weekday `json:"day"`
	Meals string  `json:"meals"`
}

// CoachResult is the composite plan returned to callers: a 7-day workout
// schedule, a 7-day diet schedule, and the projected days to reach the
// stated goal.
type CoachResult struct {
	WorkoutPlan         []WorkoutEntry `json:"workout_plan"`
	DietPlan            []DietEntry    `json:"diet_plan"`
	EstimatedDaysToGoal int            `json:"estimated_days_to_goal"`
}

// PlanUpdate carries a partial update of a stored plan. Nil fields are
// left untouched.
type PlanUpdate struct {
	CurrentWeight    *string `json:"current_weight"`
	WeightGoal       *string `json:"weight_goal"`
	WorkoutFrequency *string `json:"workout_frequency"`
}
