package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-fitness-coach/internal/llm"

	"github.com/google/generative-ai-go/genai"
)

// Generator produces schema-constrained JSON from a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (llm.ContentResponse, error)
}

// GenerationMeta holds operational metadata for one plan request.
type GenerationMeta struct {
	Usage   llm.TokenUsage
	Latency time.Duration
}

// Service turns a user profile into a fitness plan via one provider call.
// It performs no retries and enforces no timeout; both are the caller's
// responsibility.
type Service struct {
	gen Generator
}

// NewService creates a plan request service. A nil generator means no
// credential was resolved from the environment; RequestPlan then fails with
// ErrMissingCredential instead of reaching for the network.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// RequestPlan builds the coaching prompt from the profile, invokes the model
// with the strict plan schema, and parses the reply into a FitnessPlan.
func (s *Service) RequestPlan(ctx context.Context, profile UserProfile) (*FitnessPlan, GenerationMeta, error) {
	if s.gen == nil {
		return nil, GenerationMeta{}, ErrMissingCredential
	}

	prompt, err := buildPrompt(profile)
	if err != nil {
		return nil, GenerationMeta{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	start := time.Now()
	resp, err := s.gen.GenerateJSON(ctx, prompt, planSchema())
	meta := GenerationMeta{Usage: resp.Usage, Latency: time.Since(start)}
	if err != nil {
		if looksLikeMissingKey(err) {
			return nil, meta, fmt.Errorf("%w: %v", ErrMissingCredential, err)
		}
		return nil, meta, &ProviderError{Err: err}
	}

	if strings.TrimSpace(resp.Content) == "" {
		return nil, meta, ErrEmptyResponse
	}

	var plan FitnessPlan
	if err := json.Unmarshal([]byte(resp.Content), &plan); err != nil {
		return nil, meta, &MalformedPlanError{Diagnostic: err.Error(), Raw: resp.Content}
	}
	if err := validatePlan(&plan); err != nil {
		return nil, meta, &MalformedPlanError{Diagnostic: err.Error(), Raw: resp.Content}
	}

	return &plan, meta, nil
}

// validatePlan checks the fields the schema marks required. Syntactically
// valid JSON that dropped a required field is still a malformed plan.
func validatePlan(plan *FitnessPlan) error {
	if plan.UserProfileSummary == "" {
		return fmt.Errorf("missing userProfileSummary")
	}
	if plan.FitnessGoalAnalysis == "" {
		return fmt.Errorf("missing fitnessGoalAnalysis")
	}
	if len(plan.WeeklyWorkoutPlan) == 0 {
		return fmt.Errorf("weeklyWorkoutPlan is empty")
	}
	for i, day := range plan.WeeklyWorkoutPlan {
		if len(day.Exercises) == 0 {
			return fmt.Errorf("day %d (%s) has no exercises", i+1, day.Day)
		}
	}
	for slot, meal := range map[string]Meal{
		"breakfast": plan.DailyDietPlan.Breakfast,
		"lunch":     plan.DailyDietPlan.Lunch,
		"dinner":    plan.DailyDietPlan.Dinner,
	} {
		if meal.Name == "" {
			return fmt.Errorf("missing %s meal", slot)
		}
	}
	if plan.HydrationGuidance.DailyTarget == "" {
		return fmt.Errorf("missing hydration daily target")
	}
	if plan.MindsetAdvice.Title == "" {
		return fmt.Errorf("missing mindset advice")
	}
	return nil
}
