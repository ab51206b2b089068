package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// Option configures the App.
type Option func(*App)

// WithLogger sets a custom logger for the App.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStrict makes Apply refuse plans containing colliding names.
func WithStrict(strict bool) Option {
	return func(a *App) {
		a.strict = strict
	}
}

// WithNamespace scopes collision detection, e.g. per directory.
func WithNamespace(ns domain.NamespaceFunc) Option {
	return func(a *App) {
		a.namespace = ns
	}
}

// App composes planning, confirmation and execution. Only one batch runs
// at a time.
type App struct {
	mu        sync.Mutex
	planner   port.Planner
	executor  port.Executor
	confirmer port.Confirmer
	namespace domain.NamespaceFunc
	strict    bool
	logger    zerolog.Logger
}

// NewApp creates a new App with injected service dependencies.
func NewApp(planner port.Planner, executor port.Executor, confirmer port.Confirmer, opts ...Option) *App {
	a := &App{
		planner:   planner,
		executor:  executor,
		confirmer: confirmer,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Preview computes a fresh plan for spec along with any name collisions.
func (a *App) Preview(ctx context.Context, spec domain.RenameSpec) (domain.Plan, []domain.Collision, error) {
	ctx = a.logger.WithContext(ctx)

	plan, err := a.planner.Plan(ctx, spec)
	if err != nil {
		return nil, nil, err
	}
	return plan, domain.FindCollisions(plan, a.namespace), nil
}

// Apply asks for confirmation and executes plan. An empty plan and a
// declined confirmation are reported in the result, not as errors.
func (a *App) Apply(ctx context.Context, plan domain.Plan) (domain.RenameResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx = a.logger.WithContext(ctx)

	if len(plan) == 0 {
		return domain.RenameResult{Success: true, Message: "Nothing selected"}, nil
	}

	if a.strict {
		if collisions := domain.FindCollisions(plan, a.namespace); len(collisions) > 0 {
			return domain.RenameResult{}, errors.Errorf("%w: %d names are shared by more than one item, first %q",
				domain.ErrCollision, len(collisions), collisions[0].NewName)
		}
	}

	ok, err := a.confirmer.Confirm(ctx, len(plan))
	if err != nil {
		return domain.RenameResult{}, err
	}
	if !ok {
		a.logger.Info().Int("count", len(plan)).Msg("rename cancelled")
		return domain.RenameResult{
			Cancelled: true,
			Message:   "Rename cancelled",
			Planned:   len(plan),
			Untouched: len(plan),
		}, nil
	}

	outcomes := a.executor.Execute(ctx, plan)
	result := domain.Summarize(plan, outcomes)

	a.logger.Info().
		Int("renamed_count", result.RenamedCount).
		Int("untouched", result.Untouched).
		Bool("success", result.Success).
		Msg("rename executed")
	return result, nil
}

// Rename plans spec against the current selection and applies it.
func (a *App) Rename(ctx context.Context, spec domain.RenameSpec) (domain.RenameResult, error) {
	plan, _, err := a.Preview(ctx, spec)
	if err != nil {
		return domain.RenameResult{}, err
	}
	return a.Apply(ctx, plan)
}
