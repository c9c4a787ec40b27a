package telegram

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ai-fitness-coach/internal/progress"
)

// parseLogEntry reads a /log submission written as "field: value" lines and
// builds a progress entry. The exercises field uses a compact set notation:
//
//	exercises: Bench Press 10x40 8x50; Squat 5x60
func parseLogEntry(text string) (progress.Entry, error) {
	date := time.Now().Format("2006-01-02")
	var (
		bodyWeight   float64
		measurements progress.Measurements
		hasMeasure   bool
		completed    bool
		notes        string
		exercises    []progress.LoggedExercise
		hasWeight    bool
	)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "/log") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return progress.Entry{}, fmt.Errorf("line %q is not in \"field: value\" form", line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "date":
			if _, err = time.Parse("2006-01-02", value); err != nil {
				return progress.Entry{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
			}
			date = value
		case "weight":
			bodyWeight, err = strconv.ParseFloat(value, 64)
			hasWeight = true
		case "waist":
			measurements.Waist, err = strconv.ParseFloat(value, 64)
			hasMeasure = true
		case "chest":
			measurements.Chest, err = strconv.ParseFloat(value, 64)
			hasMeasure = true
		case "arms":
			measurements.Arms, err = strconv.ParseFloat(value, 64)
			hasMeasure = true
		case "completed":
			completed = value == "yes" || value == "true"
		case "notes":
			notes = value
		case "exercises":
			exercises, err = parseExercises(value)
		default:
			return progress.Entry{}, fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return progress.Entry{}, fmt.Errorf("invalid value for %q: %w", key, err)
		}
	}

	if !hasWeight {
		return progress.Entry{}, fmt.Errorf("missing required field: weight")
	}

	var m *progress.Measurements
	if hasMeasure {
		m = &measurements
	}
	return progress.NewEntry(date, bodyWeight, m, completed, notes, exercises), nil
}

func parseExercises(value string) ([]progress.LoggedExercise, error) {
	var exercises []progress.LoggedExercise
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var (
			nameTokens []string
			sets       []progress.SetResult
		)
		for _, token := range strings.Fields(part) {
			reps, weight, ok := parseSetToken(token)
			if ok {
				sets = append(sets, progress.SetResult{Reps: reps, Weight: weight})
				continue
			}
			if len(sets) > 0 {
				return nil, fmt.Errorf("unexpected token %q after sets in %q", token, part)
			}
			nameTokens = append(nameTokens, token)
		}
		if len(nameTokens) == 0 || len(sets) == 0 {
			return nil, fmt.Errorf("%q needs a name followed by sets like 10x40", part)
		}
		exercises = append(exercises, progress.LoggedExercise{
			Name: strings.Join(nameTokens, " "),
			Sets: sets,
		})
	}
	return exercises, nil
}

func parseSetToken(token string) (int, float64, bool) {
	repsRaw, weightRaw, ok := strings.Cut(token, "x")
	if !ok {
		return 0, 0, false
	}
	reps, err := strconv.Atoi(repsRaw)
	if err != nil {
		return 0, 0, false
	}
	weight, err := strconv.ParseFloat(weightRaw, 64)
	if err != nil {
		return 0, 0, false
	}
	return reps, weight, true
}
