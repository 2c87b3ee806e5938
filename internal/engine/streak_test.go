package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/habitquest/internal/models"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name        string
		perfectDays []string
		want        int
	}{
		{"empty", nil, 0},
		{"today and two before", []string{"2024-03-08", "2024-03-09", "2024-03-10"}, 3},
		{"today still open", []string{"2024-03-08", "2024-03-09"}, 2},
		{"gap before yesterday", []string{"2024-03-10", "2024-03-08"}, 1},
		{"only older days", []string{"2024-03-07", "2024-03-08"}, 0},
		{"unordered input", []string{"2024-03-09", "2024-03-10", "2024-03-08", "2024-03-01"}, 3},
		{"across month boundary", []string{"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-09", "2024-03-10"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.perfectDays, today))
		})
	}
}

func TestComputeStreakAcrossYear(t *testing.T) {
	days := []string{"2023-12-30", "2023-12-31", "2024-01-01"}
	assert.Equal(t, 3, ComputeStreak(days, "2024-01-02"))
	assert.Equal(t, 0, ComputeStreak(days, "not-a-date"))
}

func TestRecomputePerfectDay(t *testing.T) {
	done := models.Goal{ID: "a", Type: models.GoalDaily, Tracking: models.Checkbox{Done: true}}
	open := models.Goal{ID: "b", Type: models.GoalDaily, Tracking: models.Checkbox{}}
	weekly := models.Goal{ID: "c", Type: models.GoalWeekly, Tracking: models.Counter{Target: 2}}

	tests := []struct {
		name  string
		goals []models.Goal
		days  []string
		want  []string
	}{
		{"no daily goals keeps set", []models.Goal{weekly}, []string{today}, []string{today}},
		{"no goals at all", nil, nil, nil},
		{"all done adds today", []models.Goal{done, weekly}, []string{yesterday}, []string{yesterday, today}},
		{"all done already present", []models.Goal{done}, []string{today}, []string{today}},
		{"one open removes today", []models.Goal{done, open}, []string{yesterday, today}, []string{yesterday}},
		{"open and absent", []models.Goal{open}, []string{yesterday}, []string{yesterday}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecomputePerfectDay(tt.goals, tt.days, today))
		})
	}
}

func TestRecomputePerfectDayDoesNotAlias(t *testing.T) {
	open := models.Goal{ID: "b", Type: models.GoalDaily, Tracking: models.Checkbox{}}
	days := []string{today, yesterday}

	got := RecomputePerfectDay([]models.Goal{open}, days, today)
	assert.Equal(t, []string{yesterday}, got)
	assert.Equal(t, []string{today, yesterday}, days)
}
