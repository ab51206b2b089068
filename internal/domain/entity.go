package domain

// Identity is the opaque handle a store uses to address an item,
// independent of the item's display name.
type Identity string

// Item is a selected, renameable thing as reported by a selection provider.
type Item struct {
	Identity Identity
	Name     string
}

// RenameSpec describes how new names are derived from current names.
// Pattern is empty or a valid regular expression for the configured engine.
type RenameSpec struct {
	Pattern     string
	Replacement string
	IsPrefix    bool
	IsPostfix   bool
}

// AffixOverridesPattern reports whether a pattern is set but will be
// discarded because prefix or postfix mode takes precedence.
func (s RenameSpec) AffixOverridesPattern() bool {
	return s.Pattern != "" && (s.IsPrefix || s.IsPostfix)
}

// Mode names the strategy the spec resolves to.
func (s RenameSpec) Mode() string {
	switch {
	case s.IsPrefix && s.IsPostfix:
		return "affix"
	case s.IsPrefix:
		return "prefix"
	case s.IsPostfix:
		return "postfix"
	case s.Pattern != "":
		return "pattern"
	default:
		return "replace"
	}
}

type PlanEntry struct {
	Identity Identity
	OldName  string
	NewName  string
}

// Unchanged reports whether applying the entry keeps the same name.
func (e PlanEntry) Unchanged() bool {
	return e.OldName == e.NewName
}

// Plan is the ordered, not-yet-applied mapping from old to new names.
type Plan []PlanEntry

type OutcomeStatus int

const (
	OutcomeSuccess OutcomeStatus = iota
	OutcomeFailure
)

func (s OutcomeStatus) String() string {
	if s == OutcomeSuccess {
		return "success"
	}
	return "failure"
}

// Outcome is the result of applying a single plan entry.
type Outcome struct {
	Entry  PlanEntry
	Status OutcomeStatus
	Reason string
}

func Success(e PlanEntry) Outcome {
	return Outcome{Entry: e, Status: OutcomeSuccess}
}

func Failure(e PlanEntry, reason string) Outcome {
	return Outcome{Entry: e, Status: OutcomeFailure, Reason: reason}
}

func (o Outcome) OK() bool {
	return o.Status == OutcomeSuccess
}

type RenameResult struct {
	Success      bool
	Cancelled    bool
	Message      string
	Planned      int
	RenamedCount int
	Untouched    int
	Failure      *Outcome
}
