package progress

import (
	"github.com/google/uuid"
)

// SetResult is one performed set of an exercise.
type SetResult struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// LoggedExercise is a named exercise with its performed sets, in order.
type LoggedExercise struct {
	Name string      `json:"name"`
	Sets []SetResult `json:"sets"`
}

// Measurements are optional body measurements in centimeters.
type Measurements struct {
	Waist float64 `json:"waist,omitempty"`
	Chest float64 `json:"chest,omitempty"`
	Arms  float64 `json:"arms,omitempty"`
}

// PersonalBest is the maximum recorded weight for one exercise.
type PersonalBest struct {
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
}

// Entry is one dated progress record. Entries are never mutated or deleted
// after creation; the log is an append-only sequence in insertion order.
type Entry struct {
	ID               string           `json:"id"`
	Date             string           `json:"date"`
	BodyWeight       float64          `json:"bodyWeight"`
	Measurements     *Measurements    `json:"measurements,omitempty"`
	WorkoutCompleted bool             `json:"workoutCompleted"`
	Notes            string           `json:"notes,omitempty"`
	LoggedExercises  []LoggedExercise `json:"loggedExercises,omitempty"`
	PersonalBests    []PersonalBest   `json:"personalBests,omitempty"`
}

// NewEntry creates a log entry with a fresh identifier. Personal bests are
// derived here, at write time, so a stored entry stays self-contained and
// never needs recomputation.
func NewEntry(date string, bodyWeight float64, m *Measurements, workoutCompleted bool, notes string, exercises []LoggedExercise) Entry {
	return Entry{
		ID:               uuid.NewString(),
		Date:             date,
		BodyWeight:       bodyWeight,
		Measurements:     m,
		WorkoutCompleted: workoutCompleted,
		Notes:            notes,
		LoggedExercises:  exercises,
		PersonalBests:    derivePersonalBests(exercises),
	}
}

// derivePersonalBests returns one best per distinct exercise name, in first
// appearance order. Exercises without a positive set weight yield nothing.
func derivePersonalBests(exercises []LoggedExercise) []PersonalBest {
	best := make(map[string]float64)
	var order []string

	for _, ex := range exercises {
		for _, set := range ex.Sets {
			if set.Weight <= 0 {
				continue
			}
			if _, seen := best[ex.Name]; !seen {
				order = append(order, ex.Name)
			}
			if set.Weight > best[ex.Name] {
				best[ex.Name] = set.Weight
			}
		}
	}

	var bests []PersonalBest
	for _, name := range order {
		bests = append(bests, PersonalBest{Exercise: name, Weight: best[name]})
	}
	return bests
}
