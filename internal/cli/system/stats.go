package system

import (
	"fmt"
	"io"
	"strings"

	"github.com/julianstephens/habitquest/internal/calendar"
	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/models"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	state := eng.State()
	summary := eng.Summary()

	dailyDone, dailyTotal := 0, 0
	for _, g := range models.GoalsOfType(state.Goals, models.GoalDaily) {
		dailyTotal++
		if g.Completed() {
			dailyDone++
		}
	}

	ctx.Printf("Today (%s)\n", summary.Date)
	ctx.Printf("  Habits:       %d/%d done, %d points earned\n", summary.HabitsDone, summary.HabitsTotal, summary.PointsToday)
	ctx.Printf("  Daily goals:  %d/%d done\n", dailyDone, dailyTotal)
	ctx.Println()
	ctx.Printf("Balance:        %d points\n", state.Stats.TotalPoints)
	ctx.Printf("Streak:         %d days\n", eng.Streak())
	ctx.Printf("Perfect days:   %d\n", len(state.Stats.PerfectDays))
	return nil
}

type CalendarCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	eng := ctx.Engine()
	if err := ctx.Commit(eng); err != nil {
		return err
	}

	now := ctx.Clock()
	year, month := now.Year(), now.Month()
	if c.Month != "" {
		var err error
		if year, month, err = calendar.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	view := calendar.Month(year, month, eng.State().Stats.PerfectDays)
	renderMonth(ctx.Out, view, eng.Today())
	return nil
}

// renderMonth prints a Sunday-first grid. Perfect days carry a '*', today is bracketed.
func renderMonth(w io.Writer, view calendar.MonthView, today string) {
	fmt.Fprintf(w, "%s\n", view.Title())
	fmt.Fprintln(w, " Su   Mo   Tu   We   Th   Fr   Sa")
	for _, week := range view.Weeks() {
		cells := make([]string, len(week))
		for i, d := range week {
			cells[i] = formatCell(d, today)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, ""), " "))
	}
	fmt.Fprintf(w, "\n%d perfect %s this month\n", view.PerfectCount, plural(view.PerfectCount, "day", "days"))
}

func formatCell(d calendar.Day, today string) string {
	if d.Number == 0 {
		return "     "
	}
	mark := " "
	if d.Perfect {
		mark = "*"
	}
	if d.Date == today {
		return fmt.Sprintf("[%2d]%s", d.Number, mark)
	}
	return fmt.Sprintf(" %2d%s ", d.Number, mark)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
