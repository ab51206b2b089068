package domain

import "fmt"

// Summarize turns executor outcomes for plan into a user-facing result.
func Summarize(plan Plan, outcomes []Outcome) RenameResult {
	result := RenameResult{Planned: len(plan)}

	for i := range outcomes {
		if outcomes[i].OK() {
			result.RenamedCount++
			continue
		}
		failed := outcomes[i]
		result.Failure = &failed
		break
	}
	result.Untouched = len(plan) - len(outcomes)

	if result.Failure == nil {
		result.Success = true
		result.Message = fmt.Sprintf("Successfully renamed %d items", result.RenamedCount)
		return result
	}

	result.Message = fmt.Sprintf("Renamed %d of %d items; stopped at %q: %s",
		result.RenamedCount, len(plan), result.Failure.Entry.OldName, result.Failure.Reason)
	return result
}
