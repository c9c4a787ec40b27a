package coach

// UserProfile is an immutable snapshot of the user's physique, goals and
// constraints. A new form submission fully replaces any stored profile.
type UserProfile struct {
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	Height            float64  `json:"height"` // cm
	Weight            float64  `json:"weight"` // kg
	FitnessGoal       string   `json:"fitnessGoal"`
	ExperienceLevel   string   `json:"experienceLevel"`
	DailySchedule     string   `json:"dailySchedule"`
	WorkoutResources  []string `json:"workoutResources"`
	HealthConditions  string   `json:"healthConditions"`
	DietaryPreference string   `json:"dietaryPreference"`
	CulturalFoodHabit string   `json:"culturalFoodHabit"`
	MonthlyBudget     string   `json:"monthlyBudget"`
	WorkoutDays       int      `json:"workoutDays"`
}

// WorkoutExercise is one exercise within a session. VideoURL is the only
// field the model is allowed to omit.
type WorkoutExercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        string `json:"reps"`
	Rest        string `json:"rest"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl,omitempty"`
}

// DayWorkout is one training session of the weekly plan.
type DayWorkout struct {
	Day       string            `json:"day"`
	Title     string            `json:"title"`
	Duration  string            `json:"duration"`
	Exercises []WorkoutExercise `json:"exercises"`
}

// Macros is a display-oriented macro breakdown.
type Macros struct {
	Protein string `json:"protein"`
	Carbs   string `json:"carbs"`
	Fats    string `json:"fats"`
}

// Meal is a single meal with its budget alternative.
type Meal struct {
	Name                string   `json:"name"`
	Items               []string `json:"items"`
	PortionSizes        string   `json:"portionSizes"`
	ApproxPrice         string   `json:"approxPrice"`
	Calories            string   `json:"calories"`
	CookingInstructions []string `json:"cookingInstructions"`
	Macros              Macros   `json:"macros"`
	BudgetAlternative   string   `json:"budgetAlternative"`
}

// DailyDietPlan has exactly three named meal slots plus snacks.
type DailyDietPlan struct {
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks"`
}

// HydrationGuidance carries the daily target and supporting tips.
type HydrationGuidance struct {
	DailyTarget string   `json:"dailyTarget"`
	Tips        []string `json:"tips"`
}

// CoachAdvice is the mindset and recovery block.
type CoachAdvice struct {
	Title          string   `json:"title"`
	Tips           []string `json:"tips"`
	RecoveryAdvice string   `json:"recoveryAdvice"`
	MindsetQuote   string   `json:"mindsetQuote"`
}

// FitnessPlan is the full structured result of one generation. It is treated
// as immutable once received; regenerating discards the previous plan.
type FitnessPlan struct {
	UserProfileSummary     string            `json:"userProfileSummary"`
	FitnessGoalAnalysis    string            `json:"fitnessGoalAnalysis"`
	WeeklyWorkoutPlan      []DayWorkout      `json:"weeklyWorkoutPlan"`
	DailyDietPlan          DailyDietPlan     `json:"dailyDietPlan"`
	HydrationGuidance      HydrationGuidance `json:"hydrationGuidance"`
	MindsetAdvice          CoachAdvice       `json:"mindsetAdvice"`
	BudgetOptimizationTips []string          `json:"budgetOptimizationTips"`
	ProgressTrackingAdvice string            `json:"progressTrackingAdvice"`
	MotivationNote         string            `json:"motivationNote"`
}
