package prompt

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
)

// Question is the text shown at the confirmation gate.
func Question(count int) string {
	if count == 1 {
		return "Are you sure you want to rename this item?"
	}
	return fmt.Sprintf("Are you sure you want to rename these %d items?", count)
}

// Terminal asks for confirmation with an interactive yes/no prompt.
// It refuses to guess when stdin is not a terminal.
type Terminal struct {
	in         *os.File
	isTerminal func(fd uintptr) bool
	ask        func(question string) (bool, error)
}

func NewTerminal(in *os.File) *Terminal {
	return &Terminal{
		in: in,
		isTerminal: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		ask: func(question string) (bool, error) {
			return pterm.DefaultInteractiveConfirm.
				WithDefaultValue(false).
				WithDefaultText(question).
				Show()
		},
	}
}

func (t *Terminal) Confirm(ctx context.Context, count int) (bool, error) {
	if !t.isTerminal(t.in.Fd()) {
		return false, errors.Errorf("%w; pass --yes to skip the prompt", domain.ErrNoTerminal)
	}

	ok, err := t.ask(Question(count))
	if err != nil {
		return false, errors.Errorf("reading confirmation: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("count", count).Bool("confirmed", ok).Msg("confirmation answered")
	return ok, nil
}

// Auto approves every batch without asking.
type Auto struct{}

func (Auto) Confirm(ctx context.Context, count int) (bool, error) {
	zerolog.Ctx(ctx).Info().Int("count", count).Msg("confirmation skipped")
	return true, nil
}
