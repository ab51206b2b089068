package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
)

var (
	removedStyle = color.New(color.FgRed, color.CrossedOut)
	addedStyle   = color.New(color.FgGreen, color.Bold)
	warnStyle    = color.New(color.FgYellow)
	okStyle      = color.New(color.FgGreen)
	faintStyle   = color.New(color.Faint)
)

func paint(segs []domain.Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case domain.SegmentRemoved:
			b.WriteString(removedStyle.Sprint(s.Text))
		case domain.SegmentAdded:
			b.WriteString(addedStyle.Sprint(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// renderPlan prints the old and new names side by side with changed
// characters highlighted.
func renderPlan(w io.Writer, plan domain.Plan, collisions []domain.Collision) error {
	colliding := make(map[domain.Identity]bool)
	for _, c := range collisions {
		for _, e := range c.Entries {
			colliding[e.Identity] = true
		}
	}

	data := pterm.TableData{{"#", "Current name", "New name"}}
	for i, e := range plan {
		oldSegs, newSegs := e.Diff()
		oldCell, newCell := paint(oldSegs), paint(newSegs)
		switch {
		case colliding[e.Identity]:
			newCell += " " + warnStyle.Sprint("(collision)")
		case e.Unchanged():
			newCell += " " + faintStyle.Sprint("(unchanged)")
		}
		data = append(data, []string{strconv.Itoa(i + 1), oldCell, newCell})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering preview: %w", err)
	}
	fmt.Fprintln(w, table)
	fmt.Fprintf(w, "Selected items: %d\n", len(plan))

	for _, c := range collisions {
		warnStyle.Fprintf(w, "%d items would be named %q\n", len(c.Entries), c.NewName)
	}
	return nil
}

// renderResult prints the outcome of a batch. It returns an error when the
// batch stopped at a failing entry.
func renderResult(w io.Writer, result domain.RenameResult) error {
	switch {
	case result.Cancelled:
		warnStyle.Fprintln(w, result.Message)
		return nil
	case result.Success:
		okStyle.Fprintln(w, result.Message)
		return nil
	}

	warnStyle.Fprintf(w, "Renamed %d of %d items, %d left untouched\n",
		result.RenamedCount, result.Planned, result.Untouched)
	if result.Failure == nil {
		return errors.New(result.Message)
	}
	return errors.Errorf("renaming %q to %q: %s",
		result.Failure.Entry.OldName, result.Failure.Entry.NewName, result.Failure.Reason)
}
