package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictNegativeBalance    ConflictType = "negative_balance"
	ConflictDuplicateID        ConflictType = "duplicate_id"
	ConflictEmptyName          ConflictType = "empty_name"
	ConflictNonPositiveValue   ConflictType = "non_positive_value"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictDuplicateDate      ConflictType = "duplicate_date"
	ConflictFutureDate         ConflictType = "future_date"
	ConflictNegativeProgress   ConflictType = "negative_progress"
	ConflictPerfectDayMismatch ConflictType = "perfect_day_mismatch"
)

// Conflict represents one broken invariant in a stored state
type Conflict struct {
	Type        ConflictType
	Description string
	IDs         []string // ids of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// OfType returns the conflicts of one type.
func (vr *ValidationResult) OfType(t ConflictType) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, ids []string, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Description: fmt.Sprintf(format, args...),
		IDs:         ids,
	})
}

// Validator checks a loaded state against the invariants the engine maintains
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateState reports every invariant the state violates as of today.
func (v *Validator) ValidateState(state models.State, today string) ValidationResult {
	var result ValidationResult

	if state.Stats.TotalPoints < 0 {
		result.add(ConflictNegativeBalance, nil, "point balance is negative (%d)", state.Stats.TotalPoints)
	}

	v.checkHabits(&result, state.Habits, today)
	v.checkGoals(&result, state.Goals)
	v.checkRewards(&result, state.Rewards)
	v.checkDates(&result, "perfect days", nil, state.Stats.PerfectDays, today)

	daily := models.GoalsOfType(state.Goals, models.GoalDaily)
	if len(daily) > 0 {
		allDone := true
		for _, g := range daily {
			allDone = allDone && g.Completed()
		}
		if perfect := state.Stats.IsPerfect(today); perfect != allDone {
			if allDone {
				result.add(ConflictPerfectDayMismatch, nil, "all daily goals are done but %s is not a perfect day", today)
			} else {
				result.add(ConflictPerfectDayMismatch, nil, "%s is recorded as perfect but some daily goals are open", today)
			}
		}
	}

	return result
}

func (v *Validator) checkHabits(result *ValidationResult, habits []models.Habit, today string) {
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		if seen[h.ID] {
			result.add(ConflictDuplicateID, []string{h.ID}, "habit id %q is used more than once", h.ID)
		}
		seen[h.ID] = true

		if strings.TrimSpace(h.Name) == "" {
			result.add(ConflictEmptyName, []string{h.ID}, "habit %q has no name", h.ID)
		}
		if h.Points <= 0 {
			result.add(ConflictNonPositiveValue, []string{h.ID}, "habit %q is worth %d points", h.Name, h.Points)
		}
		v.checkDates(result, fmt.Sprintf("habit %q", h.Name), []string{h.ID}, h.CompletedDates, today)
	}
}

func (v *Validator) checkGoals(result *ValidationResult, goals []models.Goal) {
	seen := make(map[string]bool, len(goals))
	for _, g := range goals {
		if seen[g.ID] {
			result.add(ConflictDuplicateID, []string{g.ID}, "goal id %q is used more than once", g.ID)
		}
		seen[g.ID] = true

		if strings.TrimSpace(g.Text) == "" {
			result.add(ConflictEmptyName, []string{g.ID}, "goal %q has no text", g.ID)
		}
		if c, ok := g.Counter(); ok {
			if c.Target <= 0 {
				result.add(ConflictNonPositiveValue, []string{g.ID}, "goal %q has target %d", g.Text, c.Target)
			}
			if c.Current < 0 {
				result.add(ConflictNegativeProgress, []string{g.ID}, "goal %q has negative progress %d", g.Text, c.Current)
			}
		}
	}
}

func (v *Validator) checkRewards(result *ValidationResult, rewards []models.Reward) {
	seen := make(map[string]bool, len(rewards))
	for _, r := range rewards {
		if seen[r.ID] {
			result.add(ConflictDuplicateID, []string{r.ID}, "reward id %q is used more than once", r.ID)
		}
		seen[r.ID] = true

		if strings.TrimSpace(r.Name) == "" {
			result.add(ConflictEmptyName, []string{r.ID}, "reward %q has no name", r.ID)
		}
		if r.Cost <= 0 {
			result.add(ConflictNonPositiveValue, []string{r.ID}, "reward %q costs %d points", r.Name, r.Cost)
		}
	}
}

func (v *Validator) checkDates(result *ValidationResult, owner string, ids []string, days []string, today string) {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		switch {
		case !utils.ValidateDate(d):
			result.add(ConflictInvalidDate, ids, "%s has invalid date %q", owner, d)
		case d > today:
			result.add(ConflictFutureDate, ids, "%s has date %s after today", owner, d)
		}
		if seen[d] {
			result.add(ConflictDuplicateDate, ids, "%s lists %s more than once", owner, d)
		}
		seen[d] = true
	}
}
