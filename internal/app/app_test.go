package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/database"
	"ai-fitness-coach/internal/progress"
	"ai-fitness-coach/internal/storage"
)

// mockPlanService counts calls and replays a canned result. When block is
// non-nil, RequestPlan signals started and then waits until block is closed.
type mockPlanService struct {
	mu      sync.Mutex
	calls   int
	plan    *coach.FitnessPlan
	err     error
	started chan struct{}
	block   chan struct{}
}

func (m *mockPlanService) RequestPlan(_ context.Context, _ coach.UserProfile) (*coach.FitnessPlan, coach.GenerationMeta, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.started != nil {
		close(m.started)
		m.started = nil
	}
	if m.block != nil {
		<-m.block
	}
	return m.plan, coach.GenerationMeta{}, m.err
}

func (m *mockPlanService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fixture struct {
	slots *storage.Store
	logs  *progress.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	slots, err := storage.NewStore(dir)
	if err != nil {
		t.Fatalf("Failed to create slot store: %v", err)
	}
	db, err := database.NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return fixture{slots: slots, logs: progress.NewRepository(db.SQL)}
}

func testProfile() coach.UserProfile {
	return coach.UserProfile{
		Age: 20, Gender: "male", Height: 175, Weight: 70,
		FitnessGoal: "muscle gain", ExperienceLevel: "beginner",
		DailySchedule: "evenings", WorkoutResources: []string{"bodyweight", "dumbbells"},
		DietaryPreference: "vegetarian", CulturalFoodHabit: "North Indian",
		MonthlyBudget: "3000 INR", WorkoutDays: 4,
	}
}

func testPlan() *coach.FitnessPlan {
	return &coach.FitnessPlan{UserProfileSummary: "summary"}
}

func TestGeneratePlanRequiresAuthorization(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	a := NewApp(svc, fx.slots, fx.logs, nil)

	_, err := a.GeneratePlan(context.Background(), testProfile())
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Expected ErrNotAuthorized, got %v", err)
	}
	if svc.callCount() != 0 {
		t.Errorf("Expected no provider call while unauthorized, got %d", svc.callCount())
	}
	if a.State() != StateUnauthorized {
		t.Errorf("Expected state to stay unauthorized, got %v", a.State())
	}
}

func TestAuthorizeUnlocksGeneration(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	a := NewApp(svc, fx.slots, fx.logs, nil)

	if err := a.Authorize("Rahul", "rahul@example.com"); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if a.State() != StateNoPlan {
		t.Fatalf("Expected no-plan after authorize, got %v", a.State())
	}

	plan, err := a.GeneratePlan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if svc.callCount() != 1 {
		t.Errorf("Expected exactly one provider call, got %d", svc.callCount())
	}
	if plan == nil || a.State() != StateWithPlan {
		t.Errorf("Expected with-plan state, got %v", a.State())
	}
}

func TestAuthorizeRejectsEmptyName(t *testing.T) {
	fx := newFixture(t)
	a := NewApp(&mockPlanService{}, fx.slots, fx.logs, nil)

	if err := a.Authorize("   ", ""); err == nil {
		t.Fatal("Expected an error for an empty name")
	}
	if a.State() != StateUnauthorized {
		t.Errorf("Expected state to stay unauthorized, got %v", a.State())
	}
}

func TestGeneratePlanSingleFlight(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{
		plan:    testPlan(),
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	a := NewApp(svc, fx.slots, fx.logs, nil)
	if err := a.Authorize("Rahul", ""); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}

	started := svc.started
	release := svc.block
	done := make(chan error, 1)
	go func() {
		_, err := a.GeneratePlan(context.Background(), testProfile())
		done <- err
	}()

	<-started
	if a.State() != StateLoading || !a.Loading() {
		t.Errorf("Expected loading state while in flight, got %v", a.State())
	}

	_, err := a.GeneratePlan(context.Background(), testProfile())
	if !errors.Is(err, ErrGenerationInFlight) {
		t.Fatalf("Expected ErrGenerationInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("First GeneratePlan failed: %v", err)
	}
	if svc.callCount() != 1 {
		t.Errorf("Expected exactly one provider call, got %d", svc.callCount())
	}
	if a.State() != StateWithPlan {
		t.Errorf("Expected with-plan after completion, got %v", a.State())
	}
}

func TestGeneratePlanFailureKeepsState(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	a := NewApp(svc, fx.slots, fx.logs, nil)
	if err := a.Authorize("Rahul", ""); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}

	// Hold a plan first, then fail a regeneration.
	if _, err := a.GeneratePlan(context.Background(), testProfile()); err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	svc.err = &coach.MalformedPlanError{Diagnostic: "bad json"}

	_, err := a.GeneratePlan(context.Background(), testProfile())
	var malformed *coach.MalformedPlanError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected the service error to surface, got %v", err)
	}
	if a.Loading() {
		t.Error("Expected loading to be cleared after failure")
	}
	if a.State() != StateWithPlan || a.Plan() == nil {
		t.Errorf("Expected the previous plan to survive the failure, got state=%v", a.State())
	}
}

func TestHistoryTransitions(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	a := NewApp(svc, fx.slots, fx.logs, nil)

	if err := a.OpenHistory(); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("Expected ErrNotAuthorized before the gate, got %v", err)
	}

	if err := a.Authorize("Rahul", ""); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if _, err := a.GeneratePlan(context.Background(), testProfile()); err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if err := a.OpenHistory(); err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	if a.State() != StateHistory {
		t.Fatalf("Expected history state, got %v", a.State())
	}

	entry := progress.NewEntry("2026-08-30", 70, nil, true, "", nil)
	if err := a.SaveLogEntry(context.Background(), entry); err != nil {
		t.Fatalf("SaveLogEntry failed: %v", err)
	}
	if a.State() != StateHistory {
		t.Errorf("Expected saving a log to stay in history, got %v", a.State())
	}

	a.CloseHistory()
	if a.State() != StateWithPlan {
		t.Errorf("Expected to return to the previous plan state, got %v", a.State())
	}
}

func TestResetPlan(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	a := NewApp(svc, fx.slots, fx.logs, nil)
	if err := a.Authorize("Rahul", ""); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if _, err := a.GeneratePlan(context.Background(), testProfile()); err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	a.ResetPlan()
	if a.State() != StateNoPlan || a.Plan() != nil {
		t.Errorf("Expected the plan to be discarded, got state=%v", a.State())
	}
}

func TestRestoreAfterReload(t *testing.T) {
	fx := newFixture(t)
	svc := &mockPlanService{plan: testPlan()}
	ctx := context.Background()

	first := NewApp(svc, fx.slots, fx.logs, nil)
	if err := first.Authorize("Rahul", ""); err != nil {
		t.Fatalf("Authorize failed: %v", err)
	}
	if _, err := first.GeneratePlan(ctx, testProfile()); err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	e1 := progress.NewEntry("2026-08-30", 70, nil, true, "", nil)
	if err := first.SaveLogEntry(ctx, e1); err != nil {
		t.Fatalf("SaveLogEntry failed: %v", err)
	}

	// Fresh controller over the same persisted storage.
	second := NewApp(svc, fx.slots, fx.logs, nil)
	if err := second.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if second.State() != StateNoPlan {
		t.Errorf("Expected no-plan after reload (plans are not persisted), got %v", second.State())
	}
	if second.Plan() != nil {
		t.Error("Expected no plan to survive a reload")
	}
	if second.UserName() != "Rahul" {
		t.Errorf("Expected userName 'Rahul', got %q", second.UserName())
	}
	profile := second.Profile()
	if profile == nil || profile.CulturalFoodHabit != "North Indian" {
		t.Errorf("Expected the stored profile to be restored, got %+v", profile)
	}
	logs, err := second.Logs(ctx)
	if err != nil {
		t.Fatalf("Logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].ID != e1.ID {
		t.Errorf("Expected logs [e1], got %+v", logs)
	}
}

func TestRestoreWithoutPriorState(t *testing.T) {
	fx := newFixture(t)
	a := NewApp(&mockPlanService{}, fx.slots, fx.logs, nil)

	if err := a.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if a.State() != StateUnauthorized {
		t.Errorf("Expected unauthorized on first run, got %v", a.State())
	}
}
