package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ai-fitness-coach/internal/app"
	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/config"
	"ai-fitness-coach/internal/database"
	"ai-fitness-coach/internal/llm"
	"ai-fitness-coach/internal/metrics"
	"ai-fitness-coach/internal/progress"
	"ai-fitness-coach/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	svc := coach.NewService(nil)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	switch {
	case err == nil:
		defer geminiClient.Close()
		svc = coach.NewService(geminiClient)
	case errors.Is(err, llm.ErrNoAPIKey):
		// Everything except plan generation still works.
	default:
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	slots, err := storage.NewStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	logs := progress.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	application := app.NewApp(svc, slots, logs, metricsStore)
	if err := application.Restore(); err != nil {
		log.Fatalf("Failed to restore saved state: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "access":
		runAccess(application, cfg, os.Args[2:])
	case "generate":
		runGenerate(ctx, application, os.Args[2:])
	case "log":
		runLog(ctx, application, os.Args[2:])
	case "history":
		runHistory(ctx, application)
	case "reset":
		application.ResetPlan()
		fmt.Println("Plan discarded.")
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runAccess(application *app.App, cfg *config.Config, args []string) {
	accessCmd := flag.NewFlagSet("access", flag.ExitOnError)
	name := accessCmd.String("name", "", "Your name (required)")
	email := accessCmd.String("email", "", "Your email (optional)")
	accessCmd.Parse(args)

	if cfg.AccessNameOnly {
		*email = ""
	}
	if err := application.Authorize(*name, *email); err != nil {
		log.Fatalf("Access failed: %v", err)
	}
	fmt.Printf("Welcome, %s. You now have access.\n", application.UserName())
}

func runGenerate(ctx context.Context, application *app.App, args []string) {
	genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	age := genCmd.Int("age", 0, "Age in years")
	gender := genCmd.String("gender", "", "Gender")
	height := genCmd.Float64("height", 0, "Height in cm")
	weight := genCmd.Float64("weight", 0, "Weight in kg")
	goal := genCmd.String("goal", "", "Fitness goal, e.g. muscle gain")
	level := genCmd.String("level", "", "Experience level")
	schedule := genCmd.String("schedule", "", "Daily schedule")
	equipment := genCmd.String("equipment", "", "Comma-separated equipment list")
	health := genCmd.String("health", "", "Health conditions")
	diet := genCmd.String("diet", "", "Dietary preference")
	cuisine := genCmd.String("cuisine", "", "Cultural food habit")
	budget := genCmd.String("budget", "", "Monthly food budget")
	days := genCmd.Int("days", 0, "Workout days per week")
	genCmd.Parse(args)

	profile := coach.UserProfile{
		Age:               *age,
		Gender:            *gender,
		Height:            *height,
		Weight:            *weight,
		FitnessGoal:       *goal,
		ExperienceLevel:   *level,
		DailySchedule:     *schedule,
		HealthConditions:  *health,
		DietaryPreference: *diet,
		CulturalFoodHabit: *cuisine,
		MonthlyBudget:     *budget,
		WorkoutDays:       *days,
	}
	for _, item := range strings.Split(*equipment, ",") {
		if item = strings.TrimSpace(item); item != "" {
			profile.WorkoutResources = append(profile.WorkoutResources, item)
		}
	}

	fmt.Println("Generating your plan, this can take a minute...")
	plan, err := application.GeneratePlan(ctx, profile)
	switch {
	case errors.Is(err, app.ErrNotAuthorized):
		log.Fatal("You need access first: run the access command with your name.")
	case errors.Is(err, coach.ErrMissingCredential):
		log.Fatal("AI key missing: set GEMINI_API_KEY in the environment and retry.")
	case err != nil:
		log.Fatalf("Plan generation failed: %v", err)
	}
	printPlan(plan)
}

func runLog(ctx context.Context, application *app.App, args []string) {
	logCmd := flag.NewFlagSet("log", flag.ExitOnError)
	date := logCmd.String("date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	weight := logCmd.Float64("weight", 0, "Body weight in kg (required)")
	waist := logCmd.Float64("waist", 0, "Waist in cm")
	chest := logCmd.Float64("chest", 0, "Chest in cm")
	arms := logCmd.Float64("arms", 0, "Arms in cm")
	completed := logCmd.Bool("completed", false, "Workout completed today")
	notes := logCmd.String("notes", "", "Free-form notes")
	var exercises exerciseFlags
	logCmd.Var(&exercises, "exercise", `Logged exercise like "Bench Press 10x40 8x50" (repeatable)`)
	logCmd.Parse(args)

	if _, err := time.Parse("2006-01-02", *date); err != nil {
		log.Fatalf("Invalid -date %q, want YYYY-MM-DD", *date)
	}
	if *weight <= 0 {
		log.Fatal("-weight is required")
	}

	var m *progress.Measurements
	if *waist > 0 || *chest > 0 || *arms > 0 {
		m = &progress.Measurements{Waist: *waist, Chest: *chest, Arms: *arms}
	}

	entry := progress.NewEntry(*date, *weight, m, *completed, *notes, exercises)
	if err := application.SaveLogEntry(ctx, entry); err != nil {
		log.Fatalf("Failed to save log entry: %v", err)
	}

	fmt.Printf("Logged %s at %.1fkg.\n", entry.Date, entry.BodyWeight)
	for _, pb := range entry.PersonalBests {
		fmt.Printf("New best for %s: %.1fkg\n", pb.Exercise, pb.Weight)
	}
}

func runHistory(ctx context.Context, application *app.App) {
	if err := application.OpenHistory(); err != nil {
		log.Fatal("You need access first: run the access command with your name.")
	}
	defer application.CloseHistory()

	entries, err := application.Logs(ctx)
	if err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No progress logged yet.")
		return
	}
	for _, e := range entries {
		status := "rest day"
		if e.WorkoutCompleted {
			status = "workout done"
		}
		fmt.Printf("%s  %.1fkg  %s\n", e.Date, e.BodyWeight, status)
		if e.Notes != "" {
			fmt.Printf("  %s\n", e.Notes)
		}
		for _, ex := range e.LoggedExercises {
			var sets []string
			for _, s := range ex.Sets {
				sets = append(sets, fmt.Sprintf("%dx%g", s.Reps, s.Weight))
			}
			fmt.Printf("  %s: %s\n", ex.Name, strings.Join(sets, " "))
		}
		for _, pb := range e.PersonalBests {
			fmt.Printf("  best %s: %.1fkg\n", pb.Exercise, pb.Weight)
		}
	}
}

func printPlan(plan *coach.FitnessPlan) {
	fmt.Printf("\n%s\n%s\n", plan.UserProfileSummary, plan.FitnessGoalAnalysis)

	fmt.Println("\nWEEKLY WORKOUT PLAN")
	for _, day := range plan.WeeklyWorkoutPlan {
		fmt.Printf("\n%s — %s (%s)\n", day.Day, day.Title, day.Duration)
		for _, ex := range day.Exercises {
			fmt.Printf("  %s: %dx%s, rest %s\n", ex.Name, ex.Sets, ex.Reps, ex.Rest)
			if ex.Description != "" {
				fmt.Printf("    %s\n", ex.Description)
			}
			if ex.VideoURL != "" {
				fmt.Printf("    %s\n", ex.VideoURL)
			}
		}
	}

	fmt.Println("\nDAILY DIET PLAN")
	printMeal("Breakfast", plan.DailyDietPlan.Breakfast)
	printMeal("Lunch", plan.DailyDietPlan.Lunch)
	printMeal("Dinner", plan.DailyDietPlan.Dinner)
	for _, snack := range plan.DailyDietPlan.Snacks {
		printMeal("Snack", snack)
	}

	fmt.Printf("\nHydration: %s\n", plan.HydrationGuidance.DailyTarget)
	for _, tip := range plan.HydrationGuidance.Tips {
		fmt.Printf("  - %s\n", tip)
	}

	fmt.Printf("\n%s\n", plan.MindsetAdvice.Title)
	for _, tip := range plan.MindsetAdvice.Tips {
		fmt.Printf("  - %s\n", tip)
	}
	fmt.Printf("Recovery: %s\n", plan.MindsetAdvice.RecoveryAdvice)
	fmt.Printf("%q\n", plan.MindsetAdvice.MindsetQuote)

	if len(plan.BudgetOptimizationTips) > 0 {
		fmt.Println("\nBudget tips:")
		for _, tip := range plan.BudgetOptimizationTips {
			fmt.Printf("  - %s\n", tip)
		}
	}
	fmt.Printf("\n%s\n%s\n", plan.ProgressTrackingAdvice, plan.MotivationNote)
}

func printMeal(slot string, meal coach.Meal) {
	fmt.Printf("\n%s — %s (%s, %s)\n", slot, meal.Name, meal.Calories, meal.ApproxPrice)
	fmt.Printf("  %s\n", strings.Join(meal.Items, ", "))
	fmt.Printf("  P %s / C %s / F %s\n", meal.Macros.Protein, meal.Macros.Carbs, meal.Macros.Fats)
	if meal.BudgetAlternative != "" {
		fmt.Printf("  Budget option: %s\n", meal.BudgetAlternative)
	}
}

// exerciseFlags collects repeated -exercise flags. Each value is an exercise
// name followed by set tokens in RepsxWeight form.
type exerciseFlags []progress.LoggedExercise

func (f *exerciseFlags) String() string {
	return fmt.Sprintf("%d exercises", len(*f))
}

func (f *exerciseFlags) Set(value string) error {
	var (
		nameTokens []string
		sets       []progress.SetResult
	)
	for _, token := range strings.Fields(value) {
		repsRaw, weightRaw, ok := strings.Cut(token, "x")
		if ok {
			reps, repsErr := strconv.Atoi(repsRaw)
			w, weightErr := strconv.ParseFloat(weightRaw, 64)
			if repsErr == nil && weightErr == nil {
				sets = append(sets, progress.SetResult{Reps: reps, Weight: w})
				continue
			}
		}
		if len(sets) > 0 {
			return fmt.Errorf("unexpected token %q after sets in %q", token, value)
		}
		nameTokens = append(nameTokens, token)
	}
	if len(nameTokens) == 0 || len(sets) == 0 {
		return fmt.Errorf("%q needs a name followed by sets like 10x40", value)
	}
	*f = append(*f, progress.LoggedExercise{Name: strings.Join(nameTokens, " "), Sets: sets})
	return nil
}

func printUsage() {
	fmt.Println("Usage: ai-fitness-coach <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  access             Capture your name (and email) to unlock the coach")
	fmt.Println("  generate           Generate a workout and diet plan from your profile")
	fmt.Println("  log                Append an entry to the progress log")
	fmt.Println("  history            Print the progress log")
	fmt.Println("  reset              Discard the current plan")
	fmt.Println("  metrics-cleanup    Remove old generation metric records")
}
