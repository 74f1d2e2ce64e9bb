package services

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/andyrosty/diet-fitness/config"
	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/models"
)

// PlanGenerator produces a 7-day workout and diet schedule from the
// user's preferences. The estimate field of the result is left unset.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, input models.UserInput) (*models.CoachResult, error)
}

// GoalEstimator predicts how many days it will take to reach the stated
// goal, given a generated plan.
type GoalEstimator interface {
	EstimateDaysToGoal(ctx context.Context, plan *models.CoachResult) (int, error)
}

const coachSystemPrompt = "You are a fitness and nutrition AI coach. Based on the user's dietary preferences " +
	"(typical meals, restrictions, favorites, and eating habits), " +
	"current weight, weight goal, and workout frequency, provide:\n" +
	"1. A 7-day workout plan\n" +
	"2. A 7-day culturally sensitive diet plan\n" +
	"Do not estimate the number of days to reach the goal.\n" +
	"Respond with a JSON object of the form " +
	`{"workout_plan":[{"day":"monday","activity":"..."}],"diet_plan":[{"day":"monday","meals":"..."}]} ` +
	"containing exactly one workout entry and one diet entry for each of the seven weekdays, " +
	"with lowercase day names."

const estimatorSystemPrompt = "You are a health progress analyst AI. Given a workout and diet plan, estimate how many days " +
	"it will take the user to reach their weight goal. Consider the user's consistency, frequency, " +
	"and intensity of the routine when making the prediction.\n" +
	`Respond with a JSON object of the form {"estimated_days_to_goal": 45}.`

// CoachAgent talks to an OpenAI-compatible provider and implements both
// PlanGenerator and GoalEstimator. It holds no mutable state, so one
// instance serves all requests.
type CoachAgent struct {
	client         *openai.Client
	coachModel     string
	estimatorModel string
}

// NewCoachAgent builds a CoachAgent from the provider configuration.
func NewCoachAgent(cfg config.OpenAIConfig) *CoachAgent {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &CoachAgent{
		client:         openai.NewClientWithConfig(clientConfig),
		coachModel:     cfg.CoachModel,
		estimatorModel: cfg.EstimatorModel,
	}
}

// buildUserContext renders the preferences into the prompt sent to the
// coach model. The output is deterministic for a given input.
func buildUserContext(user models.UserInput) string {
	return fmt.Sprintf(
		"The user weighs %s, wants to %s, and works out %s.\n"+
			"Dietary information:\n"+
			"- Typical breakfast: %s\n"+
			"- Typical lunch: %s\n"+
			"- Typical dinner: %s\n"+
			"- Typical snacks: %s\n"+
			"- Dietary restrictions: %s\n"+
			"- Favorite meals: %s\n"+
			"- Comfort foods: %s\n"+
			"- Eating out frequency: %s\n"+
			"- Eating out choices: %s",
		user.CurrentWeight, user.WeightGoal, user.WorkoutFrequency,
		user.TypicalBreakfast, user.TypicalLunch, user.TypicalDinner, user.TypicalSnacks,
		user.DietaryRestrictions, user.FavoriteMeals, user.ComfortFoods,
		user.EatingOutFrequency, user.EatingOutChoices,
	)
}

type coachPayload struct {
	WorkoutPlan []models.WorkoutEntry `json:"workout_plan"`
	DietPlan    []models.DietEntry    `json:"diet_plan"`
}

type estimatePayload struct {
	EstimatedDaysToGoal int `json:"estimated_days_to_goal"`
}

// GeneratePlan asks the coach model for the two 7-day schedules and
// validates the shape of the response. Provider errors and malformed
// payloads both surface as ErrGeneration.
func (a *CoachAgent) GeneratePlan(ctx context.Context, input models.UserInput) (*models.CoachResult, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.coachModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: coachSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserContext(input)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: coach model call failed: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: coach model returned no choices", ErrGeneration)
	}

	var payload coachPayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return nil, fmt.Errorf("%w: unparseable coach response: %v", ErrGeneration, err)
	}

	result := &models.CoachResult{
		WorkoutPlan: payload.WorkoutPlan,
		DietPlan:    payload.DietPlan,
	}
	if err := validateSchedules(result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	logger.Infof("coach model %s produced a plan", a.coachModel)
	return result, nil
}

// EstimateDaysToGoal sends the generated plan to the estimator model and
// returns its integer prediction.
func (a *CoachAgent) EstimateDaysToGoal(ctx context.Context, plan *models.CoachResult) (int, error) {
	planJSON, err := json.Marshal(coachPayload{WorkoutPlan: plan.WorkoutPlan, DietPlan: plan.DietPlan})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to encode plan: %v", ErrGeneration, err)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.estimatorModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: estimatorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(planJSON)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: estimator model call failed: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("%w: estimator model returned no choices", ErrGeneration)
	}

	var payload estimatePayload
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &payload); err != nil {
		return 0, fmt.Errorf("%w: unparseable estimator response: %v", ErrGeneration, err)
	}
	if payload.EstimatedDaysToGoal < 0 {
		return 0, fmt.Errorf("%w: estimator returned negative day count %d", ErrGeneration, payload.EstimatedDaysToGoal)
	}
	logger.Infof("estimator model %s predicted %d days to goal", a.estimatorModel, payload.EstimatedDaysToGoal)
	return payload.EstimatedDaysToGoal, nil
}

// validateSchedules checks that the result carries exactly one workout
// entry and one diet entry per weekday, each weekday distinct and valid.
func validateSchedules(result *models.CoachResult) error {
	if len(result.WorkoutPlan) != len(models.Weekdays) {
		return fmt.Errorf("expected %d workout entries, got %d", len(models.Weekdays), len(result.WorkoutPlan))
	}
	if len(result.DietPlan) != len(models.Weekdays) {
		return fmt.Errorf("expected %d diet entries, got %d", len(models.Weekdays), len(result.DietPlan))
	}

	seen := make(map[models.Weekday]bool, len(models.Weekdays))
	for _, entry := range result.WorkoutPlan {
		if !entry.Day.Valid() {
			return fmt.Errorf("unknown weekday %q in workout plan", entry.Day)
		}
		if seen[entry.Day] {
			return fmt.Errorf("duplicate weekday %q in workout plan", entry.Day)
		}
		seen[entry.Day] = true
	}

	seen = make(map[models.Weekday]bool, len(models.Weekdays))
	for _, entry := range result.DietPlan {
		if !entry.Day.Valid() {
			return fmt.Errorf("unknown weekday %q in diet plan", entry.Day)
		}
		if seen[entry.Day] {
			return fmt.Errorf("duplicate weekday %q in diet plan", entry.Day)
		}
		seen[entry.Day] = true
	}
	return nil
}
