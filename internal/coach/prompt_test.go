package coach

import (
	"strings"
	"testing"
)

func sampleProfile() UserProfile {
	return UserProfile{
		Age:               20,
		Gender:            "male",
		Height:            175,
		Weight:            70,
		FitnessGoal:       "muscle gain",
		ExperienceLevel:   "beginner",
		DailySchedule:     "evenings",
		WorkoutResources:  []string{"bodyweight", "dumbbells"},
		HealthConditions:  "none",
		DietaryPreference: "vegetarian",
		CulturalFoodHabit: "North Indian",
		MonthlyBudget:     "3000 INR",
		WorkoutDays:       4,
	}
}

func TestBuildPromptEncodesEveryField(t *testing.T) {
	prompt, err := buildPrompt(sampleProfile())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}

	for _, want := range []string{
		"20", "male", "175", "70", "muscle gain", "beginner",
		"evenings", "bodyweight, dumbbells", "none",
		"vegetarian", "North Indian", "3000 INR", "4",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q, prompt was:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	first, err := buildPrompt(sampleProfile())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}
	second, err := buildPrompt(sampleProfile())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}
	if first != second {
		t.Error("Expected identical profiles to produce identical prompts")
	}
}

func TestBuildPromptDistinguishesProfiles(t *testing.T) {
	base, err := buildPrompt(sampleProfile())
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}

	variants := map[string]func(*UserProfile){
		"Age":               func(p *UserProfile) { p.Age = 21 },
		"Gender":            func(p *UserProfile) { p.Gender = "female" },
		"Height":            func(p *UserProfile) { p.Height = 180 },
		"Weight":            func(p *UserProfile) { p.Weight = 75 },
		"FitnessGoal":       func(p *UserProfile) { p.FitnessGoal = "fat loss" },
		"ExperienceLevel":   func(p *UserProfile) { p.ExperienceLevel = "advanced" },
		"DailySchedule":     func(p *UserProfile) { p.DailySchedule = "mornings" },
		"WorkoutResources":  func(p *UserProfile) { p.WorkoutResources = []string{"barbell"} },
		"HealthConditions":  func(p *UserProfile) { p.HealthConditions = "asthma" },
		"DietaryPreference": func(p *UserProfile) { p.DietaryPreference = "vegan" },
		"CulturalFoodHabit": func(p *UserProfile) { p.CulturalFoodHabit = "South Indian" },
		"MonthlyBudget":     func(p *UserProfile) { p.MonthlyBudget = "5000 INR" },
		"WorkoutDays":       func(p *UserProfile) { p.WorkoutDays = 5 },
	}

	for field, mutate := range variants {
		t.Run(field, func(t *testing.T) {
			profile := sampleProfile()
			mutate(&profile)
			prompt, err := buildPrompt(profile)
			if err != nil {
				t.Fatalf("buildPrompt failed: %v", err)
			}
			if prompt == base {
				t.Errorf("Expected changing %s to change the prompt", field)
			}
		})
	}
}

func TestBuildPromptDoesNotEscapeUserText(t *testing.T) {
	profile := sampleProfile()
	profile.HealthConditions = `knee pain & "mild" asthma`

	prompt, err := buildPrompt(profile)
	if err != nil {
		t.Fatalf("buildPrompt failed: %v", err)
	}
	if !strings.Contains(prompt, `knee pain & "mild" asthma`) {
		t.Errorf("Expected free text to pass through unescaped, prompt was:\n%s", prompt)
	}
}
