package telegram

import (
	"fmt"
	"strings"

	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/progress"
)

// formatPlanParts renders a plan as three Markdown messages: workouts, diet
// and advice. titles maps demonstration URLs to resolved page titles and may
// be nil.
func formatPlanParts(plan *coach.FitnessPlan, titles map[string]string) (string, string, string) {
	var wb strings.Builder
	wb.WriteString("🏋️ *Weekly Workout Plan*\n\n")
	wb.WriteString(fmt.Sprintf("_%s_\n\n", plan.UserProfileSummary))
	for _, day := range plan.WeeklyWorkoutPlan {
		wb.WriteString(fmt.Sprintf("*%s — %s* (%s)\n", day.Day, day.Title, day.Duration))
		for _, ex := range day.Exercises {
			wb.WriteString(fmt.Sprintf("• %s: %dx%s, rest %s\n", ex.Name, ex.Sets, ex.Reps, ex.Rest))
			if ex.VideoURL != "" {
				label := titles[ex.VideoURL]
				if label == "" {
					label = "demo"
				}
				wb.WriteString(fmt.Sprintf("  [%s](%s)\n", label, ex.VideoURL))
			}
		}
		wb.WriteString("\n")
	}

	var db strings.Builder
	db.WriteString("🍽 *Daily Diet Plan*\n\n")
	writeMeal(&db, "Breakfast", plan.DailyDietPlan.Breakfast)
	writeMeal(&db, "Lunch", plan.DailyDietPlan.Lunch)
	writeMeal(&db, "Dinner", plan.DailyDietPlan.Dinner)
	for _, snack := range plan.DailyDietPlan.Snacks {
		writeMeal(&db, "Snack", snack)
	}
	db.WriteString(fmt.Sprintf("💧 *Hydration*: %s\n", plan.HydrationGuidance.DailyTarget))
	for _, tip := range plan.HydrationGuidance.Tips {
		db.WriteString(fmt.Sprintf("• %s\n", tip))
	}

	var ab strings.Builder
	ab.WriteString(fmt.Sprintf("🧠 *%s*\n\n", plan.MindsetAdvice.Title))
	for _, tip := range plan.MindsetAdvice.Tips {
		ab.WriteString(fmt.Sprintf("• %s\n", tip))
	}
	ab.WriteString(fmt.Sprintf("\n*Recovery:* %s\n", plan.MindsetAdvice.RecoveryAdvice))
	ab.WriteString(fmt.Sprintf("_%s_\n\n", plan.MindsetAdvice.MindsetQuote))
	if len(plan.BudgetOptimizationTips) > 0 {
		ab.WriteString("💸 *Budget tips*\n")
		for _, tip := range plan.BudgetOptimizationTips {
			ab.WriteString(fmt.Sprintf("• %s\n", tip))
		}
		ab.WriteString("\n")
	}
	ab.WriteString(fmt.Sprintf("📈 %s\n", plan.ProgressTrackingAdvice))
	ab.WriteString(fmt.Sprintf("🔥 %s\n", plan.MotivationNote))

	return wb.String(), db.String(), ab.String()
}

func writeMeal(sb *strings.Builder, slot string, meal coach.Meal) {
	sb.WriteString(fmt.Sprintf("*%s — %s* (%s, %s)\n", slot, meal.Name, meal.Calories, meal.ApproxPrice))
	sb.WriteString(fmt.Sprintf("%s | P %s / C %s / F %s\n", strings.Join(meal.Items, ", "),
		meal.Macros.Protein, meal.Macros.Carbs, meal.Macros.Fats))
	if meal.BudgetAlternative != "" {
		sb.WriteString(fmt.Sprintf("_Budget option: %s_\n", meal.BudgetAlternative))
	}
	sb.WriteString("\n")
}

// formatHistory renders the progress log in insertion order.
func formatHistory(entries []progress.Entry) string {
	if len(entries) == 0 {
		return "📒 No progress logged yet. Use /log to add an entry."
	}

	var sb strings.Builder
	sb.WriteString("📒 *Progress History*\n\n")
	for _, e := range entries {
		status := "rest day"
		if e.WorkoutCompleted {
			status = "workout done"
		}
		sb.WriteString(fmt.Sprintf("*%s* — %.1fkg, %s\n", e.Date, e.BodyWeight, status))
		if e.Notes != "" {
			sb.WriteString(fmt.Sprintf("_%s_\n", e.Notes))
		}
		for _, pb := range e.PersonalBests {
			sb.WriteString(fmt.Sprintf("🏅 %s: %.1fkg\n", pb.Exercise, pb.Weight))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
