package goals

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a new goal."`
	List     GoalListCmd     `cmd:"" help:"List goals grouped by type." default:"1"`
	Toggle   GoalToggleCmd   `cmd:"" help:"Check or uncheck a daily goal."`
	Progress GoalProgressCmd `cmd:"" help:"Set progress on a weekly, monthly or yearly goal."`
	Delete   GoalDeleteCmd   `cmd:"" help:"Delete a goal."`
}

type GoalAddCmd struct {
	Text   string `arg:"" help:"Goal description."`
	Type   string `help:"Goal type: daily, weekly, monthly or yearly." short:"t" default:"daily"`
	Target int    `help:"Target value for weekly, monthly and yearly goals." default:"${goal_target}"`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	goalType, err := models.ParseGoalType(c.Type)
	if err != nil {
		return err
	}
	if err := models.ValidateGoalInput(c.Text, goalType, c.Target); err != nil {
		return err
	}

	eng := ctx.Engine()
	before := len(eng.State().Goals)
	goals, _ := eng.AddGoal(c.Text, goalType, c.Target)
	if err := ctx.Commit(eng); err != nil {
		return err
	}
	if len(goals) == before {
		return fmt.Errorf("goal %q was not added", c.Text)
	}

	added := goals[len(goals)-1]
	if counter, ok := added.Counter(); ok {
		ctx.Printf("Added %s goal: %s (target %d) [%s]\n", added.Type, added.Text, counter.Target, cli.ShortID(added.ID))
	} else {
		ctx.Printf("Added %s goal: %s [%s]\n", added.Type, added.Text, cli.ShortID(added.ID))
	}
	return nil
}

type GoalListCmd struct {
	Type string `help:"Only show goals of this type." short:"t"`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	types := models.GoalTypes
	if c.Type != "" {
		goalType, err := models.ParseGoalType(c.Type)
		if err != nil {
			return err
		}
		types = []models.GoalType{goalType}
	}

	eng := ctx.Engine()
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	state := eng.State()
	if len(state.Goals) == 0 {
		ctx.Println("No goals found.")
		return nil
	}

	for _, goalType := range types {
		group := models.GoalsOfType(state.Goals, goalType)
		if len(group) == 0 {
			continue
		}
		ctx.Printf("%s\n", strings.ToUpper(string(goalType)))
		for _, g := range group {
			ctx.Printf("  %-20s %-30s %s\n", cli.FormatGoalStatus(g), g.Text, cli.ShortID(g.ID))
		}
		ctx.Println()
	}

	if state.Stats.IsPerfect(eng.Today()) {
		ctx.Println("Perfect day! All daily goals are complete.")
	}
	return nil
}

type GoalToggleCmd struct {
	Goal string `arg:"" help:"Goal id, id prefix or text."`
}

func (c *GoalToggleCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	goal, err := cli.ResolveGoal(eng.State().Goals, c.Goal)
	if err != nil {
		return err
	}
	if goal.Type.TracksProgress() {
		return fmt.Errorf("%s goals track progress; use 'habitquest goal progress' instead", goal.Type)
	}

	goals, stats := eng.ToggleGoal(goal.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	updated, _ := models.ResolveGoal(goals, goal.ID)
	ctx.Printf("%s %s\n", cli.FormatGoalStatus(updated), updated.Text)
	if stats.IsPerfect(eng.Today()) {
		ctx.Printf("Perfect day! Streak: %d\n", eng.Streak())
	}
	return nil
}

type GoalProgressCmd struct {
	Goal  string `arg:"" help:"Goal id, id prefix or text."`
	Value string `arg:"" help:"New value, or +N / -N to adjust (use -- before a negative value)."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	goal, err := cli.ResolveGoal(eng.State().Goals, c.Goal)
	if err != nil {
		return err
	}
	counter, ok := goal.Counter()
	if !ok {
		return fmt.Errorf("daily goals are checked off; use 'habitquest goal toggle' instead")
	}

	value, err := cli.ParseProgress(c.Value, counter.Current)
	if err != nil {
		return err
	}

	goals, _ := eng.UpdateGoalProgress(goal.ID, value)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	updated, _ := models.ResolveGoal(goals, goal.ID)
	ctx.Printf("%s %s\n", cli.FormatGoalStatus(updated), updated.Text)
	return nil
}

type GoalDeleteCmd struct {
	Goal string `arg:"" help:"Goal id, id prefix or text."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	goal, err := cli.ResolveGoal(eng.State().Goals, c.Goal)
	if err != nil {
		return err
	}

	eng.DeleteGoal(goal.ID)
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	ctx.Printf("Deleted %s goal: %s\n", goal.Type, goal.Text)
	return nil
}
