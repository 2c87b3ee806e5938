package engine

import (
	"github.com/julianstephens/habitquest/internal/utils"
)

// ComputeStreak counts consecutive perfect days walking back from today.
// A missing today does not break the streak since the day is still open;
// from yesterday on the first missing day ends it.
func ComputeStreak(perfectDays []string, today string) int {
	if !utils.ValidateDate(today) {
		return 0
	}

	set := make(map[string]struct{}, len(perfectDays))
	for _, d := range perfectDays {
		set[d] = struct{}{}
	}

	streak := 0
	day := today
	if _, ok := set[today]; ok {
		streak++
	}
	for {
		prev, err := utils.AddDays(day, -1)
		if err != nil {
			return streak
		}
		if _, ok := set[prev]; !ok {
			return streak
		}
		streak++
		day = prev
	}
}
