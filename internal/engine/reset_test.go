package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/habitquest/internal/models"
)

func resetFixture() ([]models.Habit, []models.Goal) {
	habits := []models.Habit{
		{ID: "h1", Name: "Read", Points: 15, CompletedDates: []string{"2024-03-05", yesterday}},
		{ID: "h2", Name: "Walk", Points: 5, CompletedDates: []string{}},
	}
	goals := []models.Goal{
		{ID: "g1", Type: models.GoalDaily, Tracking: models.Checkbox{Done: true}},
		{ID: "g2", Type: models.GoalMonthly, Tracking: models.Counter{Current: 12, Target: 12}},
	}
	return habits, goals
}

func TestApplyDailyReset(t *testing.T) {
	tests := []struct {
		name      string
		lastReset string
		reset     bool
	}{
		{"no marker", "", false},
		{"same day", today, false},
		{"future marker", "2024-03-12", false},
		{"malformed marker", "03/09/2024", false},
		{"previous day", yesterday, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habits, goals := resetFixture()
			gotHabits, gotGoals := ApplyDailyReset(tt.lastReset, today, habits, goals)

			if !tt.reset {
				assert.Equal(t, habits, gotHabits)
				assert.Equal(t, goals, gotGoals)
				return
			}

			assert.Equal(t, []string{"2024-03-05"}, gotHabits[0].CompletedDates)
			assert.Empty(t, gotHabits[1].CompletedDates)
			assert.False(t, gotGoals[0].Completed())
			assert.True(t, gotGoals[1].Completed(), "progress goals are not reset")
		})
	}
}

func TestApplyDailyResetOnlyRemovesMarkerDay(t *testing.T) {
	habits, goals := resetFixture()

	// Several days were skipped: only the marker day is cleared, older entries stay.
	gotHabits, _ := ApplyDailyReset("2024-03-05", today, habits, goals)
	assert.Equal(t, []string{yesterday}, gotHabits[0].CompletedDates)

	// Inputs are untouched.
	assert.Equal(t, []string{"2024-03-05", yesterday}, habits[0].CompletedDates)
	assert.True(t, goals[0].Completed())
}
