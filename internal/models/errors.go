package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is wrapped by every input validation failure.
var ErrInvalidInput = errors.New("invalid input")

func ValidateHabitInput(name string, points int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: habit name cannot be empty", ErrInvalidInput)
	}
	if points <= 0 {
		return fmt.Errorf("%w: habit points must be positive, got %d", ErrInvalidInput, points)
	}
	return nil
}

func ValidateGoalInput(text string, goalType GoalType, target int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: goal text cannot be empty", ErrInvalidInput)
	}
	if !goalType.IsValid() {
		return fmt.Errorf("%w: unknown goal type %q", ErrInvalidInput, goalType)
	}
	if goalType.TracksProgress() && target <= 0 {
		return fmt.Errorf("%w: %s goals need a positive target, got %d", ErrInvalidInput, goalType, target)
	}
	return nil
}

func ValidateRewardInput(name string, cost int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: reward name cannot be empty", ErrInvalidInput)
	}
	if cost <= 0 {
		return fmt.Errorf("%w: reward cost must be positive, got %d", ErrInvalidInput, cost)
	}
	return nil
}
