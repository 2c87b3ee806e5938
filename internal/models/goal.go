package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type GoalType string

const (
	GoalDaily   GoalType = "daily"
	GoalWeekly  GoalType = "weekly"
	GoalMonthly GoalType = "monthly"
	GoalYearly  GoalType = "yearly"
)

// GoalTypes lists every goal type in display order.
var GoalTypes = []GoalType{GoalDaily, GoalWeekly, GoalMonthly, GoalYearly}

func (t GoalType) IsValid() bool {
	switch t {
	case GoalDaily, GoalWeekly, GoalMonthly, GoalYearly:
		return true
	default:
		return false
	}
}

// TracksProgress reports whether goals of this type carry a current/target counter.
func (t GoalType) TracksProgress() bool {
	return t.IsValid() && t != GoalDaily
}

func ParseGoalType(input string) (GoalType, error) {
	t := GoalType(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: goal type %q (want daily, weekly, monthly or yearly)", ErrInvalidInput, input)
	}
	return t, nil
}

// Tracking is the completion state of a goal. Daily goals use a Checkbox,
// every other type uses a Counter.
type Tracking interface {
	Completed() bool
	isTracking()
}

// Checkbox is a user-toggled completion flag.
type Checkbox struct {
	Done bool
}

func (c Checkbox) Completed() bool { return c.Done }
func (Checkbox) isTracking()       {}

// Counter tracks progress towards a target; it is complete once Current reaches Target.
type Counter struct {
	Current int
	Target  int
}

func (c Counter) Completed() bool { return c.Current >= c.Target }
func (Counter) isTracking()       {}

// Percent returns the display percentage of the counter.
func (c Counter) Percent() int {
	return ProgressPercent(c.Current, c.Target)
}

// Goal is a target tied to a time horizon
type Goal struct {
	ID        string
	Text      string
	Type      GoalType
	CreatedAt time.Time
	Tracking  Tracking
}

// NewGoal builds a goal with the tracking variant its type requires.
// target is ignored for daily goals.
func NewGoal(id, text string, goalType GoalType, target int, createdAt time.Time) Goal {
	g := Goal{
		ID:        id,
		Text:      text,
		Type:      goalType,
		CreatedAt: createdAt,
	}
	if goalType.TracksProgress() {
		g.Tracking = Counter{Current: 0, Target: target}
	} else {
		g.Tracking = Checkbox{}
	}
	return g
}

func (g Goal) Completed() bool {
	if g.Tracking == nil {
		return false
	}
	return g.Tracking.Completed()
}

// Counter returns the goal's progress counter, if it has one.
func (g Goal) Counter() (Counter, bool) {
	c, ok := g.Tracking.(Counter)
	return c, ok
}

// goalJSON is the flat persisted shape of a Goal.
type goalJSON struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Type         GoalType  `json:"type"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	CurrentValue *int      `json:"current_value,omitempty"`
	TargetValue  *int      `json:"target_value,omitempty"`
}

func (g Goal) MarshalJSON() ([]byte, error) {
	out := goalJSON{
		ID:        g.ID,
		Text:      g.Text,
		Type:      g.Type,
		Completed: g.Completed(),
		CreatedAt: g.CreatedAt,
	}
	if c, ok := g.Counter(); ok {
		current, target := c.Current, c.Target
		out.CurrentValue = &current
		out.TargetValue = &target
	}
	return json.Marshal(out)
}

func (g *Goal) UnmarshalJSON(data []byte) error {
	var in goalJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if !in.Type.IsValid() {
		return fmt.Errorf("goal %s: unknown type %q", in.ID, in.Type)
	}

	*g = Goal{
		ID:        in.ID,
		Text:      in.Text,
		Type:      in.Type,
		CreatedAt: in.CreatedAt,
	}

	if !in.Type.TracksProgress() {
		g.Tracking = Checkbox{Done: in.Completed}
		return nil
	}

	if in.TargetValue == nil {
		// Progress goal persisted without a counter: keep its flag as a 0/1 counter.
		c := Counter{Target: 1}
		if in.Completed {
			c.Current = 1
		}
		g.Tracking = c
		return nil
	}

	c := Counter{Target: *in.TargetValue}
	if in.CurrentValue != nil {
		c.Current = *in.CurrentValue
	}
	g.Tracking = c
	return nil
}

// GoalsOfType returns the goals of the given type, preserving order.
func GoalsOfType(goals []Goal, goalType GoalType) []Goal {
	var out []Goal
	for _, g := range goals {
		if g.Type == goalType {
			out = append(out, g)
		}
	}
	return out
}
