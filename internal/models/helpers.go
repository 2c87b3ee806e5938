package models

import (
	"math"
	"strings"
)

// ProgressPercent returns round(current/max(target,1)*100) clamped to [0, 100].
func ProgressPercent(current, target int) int {
	denom := max(target, 1)
	pct := int(math.Round(float64(current) / float64(denom) * 100))
	return min(max(pct, 0), 100)
}

// FindHabit returns the index of the habit with the given id, or -1.
func FindHabit(habits []Habit, id string) int {
	for i, h := range habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// FindGoal returns the index of the goal with the given id, or -1.
func FindGoal(goals []Goal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// FindReward returns the index of the reward with the given id, or -1.
func FindReward(rewards []Reward, id string) int {
	for i, r := range rewards {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// ResolveHabit looks a habit up by exact id first, then by case-insensitive name.
func ResolveHabit(habits []Habit, ref string) (Habit, bool) {
	if i := FindHabit(habits, ref); i >= 0 {
		return habits[i], true
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(ref)) {
			return h, true
		}
	}
	return Habit{}, false
}

// ResolveGoal looks a goal up by exact id first, then by case-insensitive text.
func ResolveGoal(goals []Goal, ref string) (Goal, bool) {
	if i := FindGoal(goals, ref); i >= 0 {
		return goals[i], true
	}
	for _, g := range goals {
		if strings.EqualFold(g.Text, strings.TrimSpace(ref)) {
			return g, true
		}
	}
	return Goal{}, false
}

// ResolveReward looks a reward up by exact id first, then by case-insensitive name.
func ResolveReward(rewards []Reward, ref string) (Reward, bool) {
	if i := FindReward(rewards, ref); i >= 0 {
		return rewards[i], true
	}
	for _, r := range rewards {
		if strings.EqualFold(r.Name, strings.TrimSpace(ref)) {
			return r, true
		}
	}
	return Reward{}, false
}
