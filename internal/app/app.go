package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"ai-fitness-coach/internal/coach"
	"ai-fitness-coach/internal/metrics"
	"ai-fitness-coach/internal/progress"
	"ai-fitness-coach/internal/storage"
)

// State is the controller's view state.
type State int

const (
	StateUnauthorized State = iota
	StateNoPlan
	StateLoading
	StateWithPlan
	StateHistory
)

func (s State) String() string {
	switch s {
	case StateUnauthorized:
		return "unauthorized"
	case StateNoPlan:
		return "no-plan"
	case StateLoading:
		return "loading"
	case StateWithPlan:
		return "with-plan"
	case StateHistory:
		return "history"
	default:
		return "unknown"
	}
}

// ErrNotAuthorized means the access gate has not been passed; the caller
// should run identity capture instead of retrying.
var ErrNotAuthorized = errors.New("access gate not passed")

// ErrGenerationInFlight means a plan request is already running. The request
// is dropped, not queued.
var ErrGenerationInFlight = errors.New("a plan request is already in flight")

// PlanService is the plan generation boundary.
type PlanService interface {
	RequestPlan(ctx context.Context, profile coach.UserProfile) (*coach.FitnessPlan, coach.GenerationMeta, error)
}

// App is the application controller. It owns all view state explicitly and
// is the final authority on transitions; render surfaces only call its
// operations. The loading flag is the mutual-exclusion gate: at most one
// plan request is in flight at any time.
type App struct {
	svc          PlanService
	slots        *storage.Store
	logs         *progress.Repository
	metricsStore *metrics.Store // optional

	mu          sync.Mutex
	state       State
	returnState State // plan state to resume when leaving history
	loading     bool
	authorized  bool
	identity    storage.Identity
	profile     *coach.UserProfile
	plan        *coach.FitnessPlan
}

// NewApp creates the controller. metricsStore may be nil.
func NewApp(svc PlanService, slots *storage.Store, logs *progress.Repository, metricsStore *metrics.Store) *App {
	return &App{
		svc:          svc,
		slots:        slots,
		logs:         logs,
		metricsStore: metricsStore,
		state:        StateUnauthorized,
	}
}

// Restore rebuilds controller state from persisted storage. A plan is never
// persisted, so a restored authorized session always starts without one.
func (a *App) Restore() error {
	identity, hasIdentity, err := a.slots.LoadIdentity()
	if err != nil {
		return fmt.Errorf("failed to restore identity: %w", err)
	}
	profile, hasProfile, err := a.slots.LoadProfile()
	if err != nil {
		return fmt.Errorf("failed to restore profile: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if hasIdentity {
		a.authorized = true
		a.identity = identity
		a.state = StateNoPlan
	} else {
		a.state = StateUnauthorized
	}
	if hasProfile {
		a.profile = profile
	}
	return nil
}

// Authorize records the identity-capture result and unlocks plan
// generation. Submission is the only path through the gate.
func (a *App) Authorize(name, email string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("a name is required")
	}

	identity := storage.Identity{Name: name, Email: strings.TrimSpace(email)}
	if err := a.slots.SaveIdentity(identity); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.authorized = true
	a.identity = identity
	if a.state == StateUnauthorized {
		a.state = StateNoPlan
	}
	return nil
}

// GeneratePlan persists the profile and requests a plan. While the gate is
// closed it fails with ErrNotAuthorized and never reaches the service; while
// a request is in flight it fails with ErrGenerationInFlight. On failure
// the previous state and any held plan are left intact.
func (a *App) GeneratePlan(ctx context.Context, profile coach.UserProfile) (*coach.FitnessPlan, error) {
	a.mu.Lock()
	if !a.authorized {
		a.mu.Unlock()
		return nil, ErrNotAuthorized
	}
	if a.loading {
		a.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	previous := a.state
	a.loading = true
	a.state = StateLoading
	a.profile = &profile
	a.mu.Unlock()

	// The new profile fully replaces the stored one before the request,
	// as submission is what commits it.
	if err := a.slots.SaveProfile(profile); err != nil {
		log.Printf("Warning: failed to persist profile: %v", err)
	}

	plan, meta, err := a.svc.RequestPlan(ctx, profile)
	a.recordMetrics(meta)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
	if err != nil {
		a.state = previous
		return nil, err
	}
	a.plan = plan
	a.state = StateWithPlan
	return plan, nil
}

// OpenHistory switches to the history view, remembering where to return.
func (a *App) OpenHistory() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.authorized {
		return ErrNotAuthorized
	}
	if a.state == StateHistory {
		return nil
	}
	a.returnState = a.state
	a.state = StateHistory
	return nil
}

// CloseHistory returns to the previous plan state.
func (a *App) CloseHistory() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateHistory {
		a.state = a.returnState
	}
}

// ResetPlan discards the current plan. The discard is not persisted because
// the plan itself never is.
func (a *App) ResetPlan() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateWithPlan {
		a.plan = nil
		a.state = StateNoPlan
	}
}

// SaveLogEntry appends one entry to the progress log.
func (a *App) SaveLogEntry(ctx context.Context, entry progress.Entry) error {
	return a.logs.Append(ctx, entry)
}

// Logs returns the progress history in insertion order.
func (a *App) Logs(ctx context.Context) ([]progress.Entry, error) {
	return a.logs.List(ctx)
}

// State reports the current view state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Loading reports whether a plan request is in flight.
func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Plan returns the currently held plan, if any.
func (a *App) Plan() *coach.FitnessPlan {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.plan
}

// Profile returns the last submitted or restored profile, if any.
func (a *App) Profile() *coach.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

// UserName returns the display name captured by the access gate.
func (a *App) UserName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.identity.Name
}

func (a *App) recordMetrics(meta coach.GenerationMeta) {
	if a.metricsStore == nil {
		return
	}
	if meta.Usage.PromptTokens == 0 && meta.Usage.CompletionTokens == 0 {
		return
	}
	err := a.metricsStore.Record(metrics.ExecutionMetric{
		Model:            meta.Usage.Model,
		PromptTokens:     meta.Usage.PromptTokens,
		CompletionTokens: meta.Usage.CompletionTokens,
		LatencyMS:        meta.Latency.Milliseconds(),
	})
	if err != nil {
		log.Printf("Warning: failed to record generation metrics: %v", err)
	}
}
