package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitquest/internal/models"
)

func positiveInt(field string) func(string) error {
	return func(s string) error {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i <= 0 {
			return errors.New(field + " must be a positive whole number")
		}
		return nil
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}
		return nil
	}
}

func (m Model) newForm(groups ...*huh.Group) *huh.Form {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"))
	return huh.NewForm(groups...).
		WithTheme(m.formTheme()).
		WithKeyMap(km).
		WithWidth(max(m.width-8, 40))
}

func (m Model) NewHabitForm(fm *HabitFormModel) *huh.Form {
	return m.newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit").
				Placeholder("Morning stretch").
				Value(&fm.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Points").
				Description("Earned each day the habit is done").
				Value(&fm.Points).
				Validate(positiveInt("points")),
		),
	)
}

func (m Model) NewGoalForm(fm *GoalFormModel) *huh.Form {
	options := make([]huh.Option[models.GoalType], 0, len(models.GoalTypes))
	for _, t := range models.GoalTypes {
		options = append(options, huh.NewOption(strings.ToUpper(string(t[:1]))+string(t[1:]), t))
	}

	return m.newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Value(&fm.Text).
				Validate(notBlank("goal text")),
			huh.NewSelect[models.GoalType]().
				Title("Horizon").
				Options(options...).
				Value(&fm.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Target").
				Description("Progress needed to complete the goal").
				Value(&fm.Target).
				Validate(positiveInt("target")),
		).WithHideFunc(func() bool { return !fm.Type.TracksProgress() }),
	)
}

func (m Model) NewRewardForm(fm *RewardFormModel) *huh.Form {
	return m.newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reward").
				Value(&fm.Name).
				Validate(notBlank("name")),
			huh.NewInput().
				Title("Cost").
				Description("Points spent when redeemed").
				Value(&fm.Cost).
				Validate(positiveInt("cost")),
		),
	)
}
