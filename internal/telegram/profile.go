package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"ai-fitness-coach/internal/coach"
)

// parseProfile reads a profile submission written as "field: value" lines.
// Unknown fields are rejected so typos surface instead of silently dropping
// a constraint.
func parseProfile(text string) (coach.UserProfile, error) {
	var profile coach.UserProfile
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return profile, fmt.Errorf("line %q is not in \"field: value\" form", line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if value == "" {
			return profile, fmt.Errorf("field %q has no value", key)
		}

		var err error
		switch key {
		case "age":
			profile.Age, err = strconv.Atoi(value)
		case "gender":
			profile.Gender = value
		case "height":
			profile.Height, err = strconv.ParseFloat(value, 64)
		case "weight":
			profile.Weight, err = strconv.ParseFloat(value, 64)
		case "goal":
			profile.FitnessGoal = value
		case "level":
			profile.ExperienceLevel = value
		case "schedule":
			profile.DailySchedule = value
		case "equipment":
			for _, item := range strings.Split(value, ",") {
				if item = strings.TrimSpace(item); item != "" {
					profile.WorkoutResources = append(profile.WorkoutResources, item)
				}
			}
		case "health":
			profile.HealthConditions = value
		case "diet":
			profile.DietaryPreference = value
		case "cuisine":
			profile.CulturalFoodHabit = value
		case "budget":
			profile.MonthlyBudget = value
		case "days":
			profile.WorkoutDays, err = strconv.Atoi(value)
		default:
			return profile, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return profile, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		seen[key] = true
	}

	var missing []string
	for _, required := range []string{"age", "gender", "height", "weight", "goal", "level", "days"} {
		if !seen[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return profile, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	return profile, nil
}
