package engine

import (
	"github.com/julianstephens/habitquest/internal/models"
)

// normalize restores the state invariants after a command: a non-negative
// balance, duplicate-free date sets, and a perfect-day entry for today that
// matches the daily goals.
func normalize(state *models.State, today string) {
	state.Stats.TotalPoints = max(state.Stats.TotalPoints, 0)
	for i := range state.Habits {
		state.Habits[i].CompletedDates = dedupe(state.Habits[i].CompletedDates)
	}
	state.Stats.PerfectDays = dedupe(state.Stats.PerfectDays)
	state.Stats.PerfectDays = RecomputePerfectDay(state.Goals, state.Stats.PerfectDays, today)
}

// dedupe drops repeated entries, keeping the first occurrence.
func dedupe(days []string) []string {
	if days == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(days))
	out := make([]string, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
