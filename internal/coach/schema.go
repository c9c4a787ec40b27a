package coach

import (
	"github.com/google/generative-ai-go/genai"
)

// planSchema declares the exact object shape the model must return. It is the
// canonical description of FitnessPlan on the wire: both the request contract
// and the parser in service.go are derived from it, so keep the two in sync
// when a field changes. Every field is required except videoUrl.
func planSchema() *genai.Schema {
	exerciseSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        {Type: genai.TypeString},
			"sets":        {Type: genai.TypeInteger},
			"reps":        {Type: genai.TypeString},
			"rest":        {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
			"videoUrl":    {Type: genai.TypeString},
		},
		Required: []string{"name", "sets", "reps", "rest", "description"},
	}

	dayWorkoutSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"day":      {Type: genai.TypeString},
			"title":    {Type: genai.TypeString},
			"duration": {Type: genai.TypeString},
			"exercises": {
				Type:  genai.TypeArray,
				Items: exerciseSchema,
			},
		},
		Required: []string{"day", "title", "duration", "exercises"},
	}

	mealSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":                {Type: genai.TypeString},
			"items":               {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"portionSizes":        {Type: genai.TypeString},
			"approxPrice":         {Type: genai.TypeString},
			"calories":            {Type: genai.TypeString},
			"cookingInstructions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"macros": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"protein": {Type: genai.TypeString},
					"carbs":   {Type: genai.TypeString},
					"fats":    {Type: genai.TypeString},
				},
				Required: []string{"protein", "carbs", "fats"},
			},
			"budgetAlternative": {Type: genai.TypeString},
		},
		Required: []string{
			"name", "items", "portionSizes", "approxPrice",
			"calories", "cookingInstructions", "macros", "budgetAlternative",
		},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"userProfileSummary":  {Type: genai.TypeString},
			"fitnessGoalAnalysis": {Type: genai.TypeString},
			"weeklyWorkoutPlan": {
				Type:  genai.TypeArray,
				Items: dayWorkoutSchema,
			},
			"dailyDietPlan": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"breakfast": mealSchema,
					"lunch":     mealSchema,
					"dinner":    mealSchema,
					"snacks":    {Type: genai.TypeArray, Items: mealSchema},
				},
				Required: []string{"breakfast", "lunch", "dinner", "snacks"},
			},
			"hydrationGuidance": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"dailyTarget": {Type: genai.TypeString},
					"tips":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"dailyTarget", "tips"},
			},
			"mindsetAdvice": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":          {Type: genai.TypeString},
					"tips":           {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
					"recoveryAdvice": {Type: genai.TypeString},
					"mindsetQuote":   {Type: genai.TypeString},
				},
				Required: []string{"title", "tips", "recoveryAdvice", "mindsetQuote"},
			},
			"budgetOptimizationTips": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"progressTrackingAdvice": {Type: genai.TypeString},
			"motivationNote":         {Type: genai.TypeString},
		},
		Required: []string{
			"userProfileSummary", "fitnessGoalAnalysis", "weeklyWorkoutPlan",
			"dailyDietPlan", "hydrationGuidance", "mindsetAdvice",
			"budgetOptimizationTips", "progressTrackingAdvice", "motivationNote",
		},
	}
}
