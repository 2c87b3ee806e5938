package habits

import (
	"fmt"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits and today's status." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit as done today."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit. Points already earned are kept."`
}

type HabitAddCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Points int    `help:"Points awarded per completion." default:"${habit_points}"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := models.ValidateHabitInput(c.Name, c.Points); err != nil {
		return err
	}

	eng := ctx.Engine()
	before := len(eng.State().Habits)
	habits := eng.AddHabit(c.Name, c.Points)
	if err := ctx.Commit(eng); err != nil {
		return err
	}
	if len(habits) == before {
		return fmt.Errorf("habit %q was not added", c.Name)
	}

	added := habits[len(habits)-1]
	ctx.Printf("Added habit: %s (+%d) [%s]\n", added.Name, added.Points, cli.ShortID(added.ID))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	state := eng.State()
	if len(state.Habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	today := eng.Today()
	ctx.Printf("Habits for %s:\n\n", today)
	for _, h := range state.Habits {
		status := "[ ]"
		if h.CompletedOn(today) {
			status = "[x]"
		}
		ctx.Printf("%s %-30s +%-4d %s\n", status, h.Name, h.Points, cli.ShortID(h.ID))
	}

	summary := eng.Summary()
	ctx.Printf("\n%d/%d done today, %d points earned\n", summary.HabitsDone, summary.HabitsTotal, summary.PointsToday)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	habit, err := cli.ResolveHabit(eng.State().Habits, c.Habit)
	if err != nil {
		return err
	}

	habits, stats := eng.ToggleHabit(habit.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	updated, _ := models.ResolveHabit(habits, habit.ID)
	if updated.CompletedOn(eng.Today()) {
		ctx.Printf("Marked %q done (+%d). Balance: %d\n", habit.Name, habit.Points, stats.TotalPoints)
	} else {
		ctx.Printf("Unmarked %q (-%d). Balance: %d\n", habit.Name, habit.Points, stats.TotalPoints)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id, id prefix or name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	habit, err := cli.ResolveHabit(eng.State().Habits, c.Habit)
	if err != nil {
		return err
	}

	eng.DeleteHabit(habit.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
