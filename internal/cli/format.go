package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/habitquest/internal/models"
)

// ParseProgress resolves a progress argument against the current value.
// "+N" and "-N" are relative, a bare number is absolute. The result never
// drops below zero.
func ParseProgress(input string, current int) (int, error) {
	input = strings.TrimSpace(input)
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: progress %q is not a number (use N, +N or -N)", models.ErrInvalidInput, input)
	}

	value := n
	if strings.HasPrefix(input, "+") || strings.HasPrefix(input, "-") {
		value = current + n
	}
	return max(value, 0), nil
}

// FormatGoalStatus renders a goal's completion for list output.
func FormatGoalStatus(g models.Goal) string {
	if c, ok := g.Counter(); ok {
		mark := " "
		if c.Completed() {
			mark = "x"
		}
		return fmt.Sprintf("[%s] %d/%d (%d%%)", mark, c.Current, c.Target, c.Percent())
	}
	if g.Completed() {
		return "[x]"
	}
	return "[ ]"
}

// ShortID trims uuids to something typeable in list output.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ResolveHabit finds a habit by id, name, or unique id prefix.
func ResolveHabit(habits []models.Habit, ref string) (models.Habit, error) {
	if h, ok := models.ResolveHabit(habits, ref); ok {
		return h, nil
	}
	return byPrefix(habits, ref, "habit", func(h models.Habit) string { return h.ID })
}

// ResolveGoal finds a goal by id, text, or unique id prefix.
func ResolveGoal(goals []models.Goal, ref string) (models.Goal, error) {
	if g, ok := models.ResolveGoal(goals, ref); ok {
		return g, nil
	}
	return byPrefix(goals, ref, "goal", func(g models.Goal) string { return g.ID })
}

// ResolveReward finds a reward by id, name, or unique id prefix.
func ResolveReward(rewards []models.Reward, ref string) (models.Reward, error) {
	if r, ok := models.ResolveReward(rewards, ref); ok {
		return r, nil
	}
	return byPrefix(rewards, ref, "reward", func(r models.Reward) string { return r.ID })
}

func byPrefix[T any](items []T, ref, kind string, id func(T) string) (T, error) {
	var (
		found T
		n     int
	)
	ref = strings.TrimSpace(ref)
	if ref != "" {
		for _, item := range items {
			if strings.HasPrefix(id(item), ref) {
				found = item
				n++
			}
		}
	}
	switch n {
	case 0:
		return found, fmt.Errorf("%s %q not found", kind, ref)
	case 1:
		return found, nil
	default:
		return found, fmt.Errorf("%s %q is ambiguous (%d matches)", kind, ref, n)
	}
}
