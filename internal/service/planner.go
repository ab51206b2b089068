package service

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// PlannerService builds rename plans from the live selection.
type PlannerService struct {
	selection port.SelectionProvider
	compiler  port.PatternCompiler
}

func NewPlannerService(selection port.SelectionProvider, compiler port.PatternCompiler) *PlannerService {
	return &PlannerService{selection: selection, compiler: compiler}
}

// Plan validates the pattern, re-reads the selection and maps the
// transformation over it. An invalid pattern yields no plan.
func (s *PlannerService) Plan(ctx context.Context, spec domain.RenameSpec) (domain.Plan, error) {
	log := zerolog.Ctx(ctx)

	var re domain.Replacer
	if spec.Pattern != "" {
		compiled, err := s.compiler.Compile(spec.Pattern)
		if err != nil {
			return nil, err
		}
		re = compiled
	}

	items, err := s.selection.Selection(ctx)
	if err != nil {
		return nil, errors.Errorf("reading selection: %w", err)
	}

	if spec.AffixOverridesPattern() {
		log.Warn().
			Str("pattern", spec.Pattern).
			Str("mode", spec.Mode()).
			Msg("pattern ignored because prefix/postfix mode is set")
	}

	plan := domain.BuildPlan(items, spec, re)
	log.Debug().Int("items", len(plan)).Str("mode", spec.Mode()).Msg("plan computed")
	return plan, nil
}
