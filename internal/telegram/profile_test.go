package telegram

import (
	"strings"
	"testing"
)

const fullProfileText = `age: 20
gender: male
height: 175
weight: 70
goal: muscle gain
level: beginner
schedule: evenings
equipment: bodyweight, dumbbells
health: none
diet: vegetarian
cuisine: North Indian
budget: 3000 INR
days: 4`

func TestParseProfileFullSubmission(t *testing.T) {
	profile, err := parseProfile(fullProfileText)
	if err != nil {
		t.Fatalf("parseProfile failed: %v", err)
	}

	if profile.Age != 20 {
		t.Errorf("expected age 20, got %d", profile.Age)
	}
	if profile.Height != 175 {
		t.Errorf("expected height 175, got %v", profile.Height)
	}
	if profile.FitnessGoal != "muscle gain" {
		t.Errorf("expected goal %q, got %q", "muscle gain", profile.FitnessGoal)
	}
	if len(profile.WorkoutResources) != 2 || profile.WorkoutResources[1] != "dumbbells" {
		t.Errorf("expected equipment list [bodyweight dumbbells], got %v", profile.WorkoutResources)
	}
	if profile.CulturalFoodHabit != "North Indian" {
		t.Errorf("expected cuisine %q, got %q", "North Indian", profile.CulturalFoodHabit)
	}
	if profile.WorkoutDays != 4 {
		t.Errorf("expected 4 workout days, got %d", profile.WorkoutDays)
	}
}

func TestParseProfileMinimalSubmission(t *testing.T) {
	profile, err := parseProfile("age: 30\ngender: female\nheight: 160\nweight: 55\ngoal: fat loss\nlevel: intermediate\ndays: 3")
	if err != nil {
		t.Fatalf("parseProfile failed: %v", err)
	}
	if profile.WorkoutResources != nil {
		t.Errorf("expected no equipment, got %v", profile.WorkoutResources)
	}
	if profile.DietaryPreference != "" {
		t.Errorf("expected empty diet, got %q", profile.DietaryPreference)
	}
}

func TestParseProfileErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{
			name:    "missing required fields",
			text:    "age: 20\ngender: male",
			wantErr: "missing required fields",
		},
		{
			name:    "unknown field",
			text:    fullProfileText + "\nshoesize: 42",
			wantErr: "unknown field",
		},
		{
			name:    "non numeric age",
			text:    strings.Replace(fullProfileText, "age: 20", "age: twenty", 1),
			wantErr: `invalid value for "age"`,
		},
		{
			name:    "line without separator",
			text:    "age 20",
			wantErr: "field: value",
		},
		{
			name:    "empty value",
			text:    strings.Replace(fullProfileText, "goal: muscle gain", "goal:", 1),
			wantErr: "has no value",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseProfile(tc.text)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestParseProfileListsMissingFields(t *testing.T) {
	_, err := parseProfile("age: 20\ngender: male\nheight: 175\nweight: 70")
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	for _, field := range []string{"goal", "level", "days"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected error to name %q, got %q", field, err.Error())
		}
	}
}
