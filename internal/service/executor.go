package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// ExecutorService applies confirmed plans through a rename sink.
type ExecutorService struct {
	sink port.RenameSink
}

func NewExecutorService(sink port.RenameSink) *ExecutorService {
	return &ExecutorService{sink: sink}
}

// Execute renames entries in plan order and stops at the first failure.
// Entries after a failure are neither attempted nor reported.
func (s *ExecutorService) Execute(ctx context.Context, plan domain.Plan) []domain.Outcome {
	log := zerolog.Ctx(ctx)

	outcomes := make([]domain.Outcome, 0, len(plan))
	for i, e := range plan {
		if err := s.sink.Rename(ctx, e.Identity, e.NewName); err != nil {
			log.Error().
				Err(err).
				Str("identity", string(e.Identity)).
				Str("new_name", e.NewName).
				Int("remaining", len(plan)-i-1).
				Msg("rename failed, stopping batch")
			return append(outcomes, domain.Failure(e, err.Error()))
		}

		log.Debug().
			Str("identity", string(e.Identity)).
			Str("old_name", e.OldName).
			Str("new_name", e.NewName).
			Msg("renamed")
		outcomes = append(outcomes, domain.Success(e))
	}
	return outcomes
}
