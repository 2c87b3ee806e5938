package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitquest/internal/models"
)

const today = "2024-05-01"

func TestValidateCleanState(t *testing.T) {
	state := models.SeedState(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	state.Habits[0].CompletedDates = []string{"2024-04-30", today}
	state.Stats.PerfectDays = []string{"2024-04-30"}

	result := New().ValidateState(state, today)
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts:\n%s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestValidateDetectsConflicts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.State)
		want   ConflictType
	}{
		{"negative balance", func(s *models.State) { s.Stats.TotalPoints = -5 }, ConflictNegativeBalance},
		{"duplicate habit id", func(s *models.State) { s.Habits[1].ID = s.Habits[0].ID }, ConflictDuplicateID},
		{"duplicate reward id", func(s *models.State) { s.Rewards[1].ID = s.Rewards[0].ID }, ConflictDuplicateID},
		{"empty habit name", func(s *models.State) { s.Habits[0].Name = "  " }, ConflictEmptyName},
		{"empty goal text", func(s *models.State) { s.Goals[0].Text = "" }, ConflictEmptyName},
		{"zero points", func(s *models.State) { s.Habits[0].Points = 0 }, ConflictNonPositiveValue},
		{"zero cost", func(s *models.State) { s.Rewards[0].Cost = 0 }, ConflictNonPositiveValue},
		{"zero target", func(s *models.State) { s.Goals[1].Tracking = models.Counter{Target: 0} }, ConflictNonPositiveValue},
		{"negative progress", func(s *models.State) { s.Goals[1].Tracking = models.Counter{Current: -1, Target: 4} }, ConflictNegativeProgress},
		{"invalid completion date", func(s *models.State) { s.Habits[0].CompletedDates = []string{"2024/04/30"} }, ConflictInvalidDate},
		{"duplicate completion date", func(s *models.State) { s.Habits[0].CompletedDates = []string{today, today} }, ConflictDuplicateDate},
		{"future perfect day", func(s *models.State) { s.Stats.PerfectDays = []string{"2024-05-02"} }, ConflictFutureDate},
		{"perfect day without daily goals done", func(s *models.State) { s.Stats.PerfectDays = []string{today} }, ConflictPerfectDayMismatch},
		{"daily goals done but not perfect", func(s *models.State) { s.Goals[0].Tracking = models.Checkbox{Done: true} }, ConflictPerfectDayMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.SeedState(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
			tt.mutate(&state)

			result := New().ValidateState(state, today)
			if len(result.OfType(tt.want)) == 0 {
				t.Errorf("expected %s conflict, got:\n%s", tt.want, result.FormatReport())
			}
			if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
				t.Errorf("FormatReport() = %q", result.FormatReport())
			}
		})
	}
}

func TestNoDailyGoalsSkipsPerfectDayCheck(t *testing.T) {
	state := models.SeedState(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	state.Goals = models.GoalsOfType(state.Goals, models.GoalWeekly)
	state.Stats.PerfectDays = []string{today}

	result := New().ValidateState(state, today)
	if got := result.OfType(ConflictPerfectDayMismatch); len(got) != 0 {
		t.Errorf("unexpected mismatch without daily goals: %+v", got)
	}
}
