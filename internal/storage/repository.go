package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/models"
	"github.com/julianstephens/habitquest/internal/utils"
)

// ExportVersion is the format version written by Export.
const ExportVersion = 1

// Repository maps the domain state onto a Provider's keys.
type Repository struct {
	provider Provider
}

func NewRepository(provider Provider) *Repository {
	return &Repository{provider: provider}
}

func (r *Repository) Provider() Provider {
	return r.provider
}

// LoadState reads every state key. A key that is missing falls back to its
// seed value silently; a key that cannot be read or decoded also falls back,
// and the returned error lists those keys. The state is always usable.
func (r *Repository) LoadState(now time.Time) (models.State, error) {
	var (
		state models.State
		errs  []error
	)

	if err := r.getJSON(constants.KeyHabits, &state.Habits); err != nil {
		state.Habits = models.SeedHabits()
		errs = appendUnlessMissing(errs, constants.KeyHabits, err)
	}
	if err := r.getJSON(constants.KeyGoals, &state.Goals); err != nil {
		state.Goals = models.SeedGoals(now.UTC())
		errs = appendUnlessMissing(errs, constants.KeyGoals, err)
	}
	if err := r.getJSON(constants.KeyRewards, &state.Rewards); err != nil {
		state.Rewards = models.SeedRewards()
		errs = appendUnlessMissing(errs, constants.KeyRewards, err)
	}
	if err := r.getJSON(constants.KeyStats, &state.Stats); err != nil {
		state.Stats = models.SeedStats()
		errs = appendUnlessMissing(errs, constants.KeyStats, err)
	}

	if state.Stats.PerfectDays == nil {
		state.Stats.PerfectDays = []string{}
	}
	for i := range state.Habits {
		if state.Habits[i].CompletedDates == nil {
			state.Habits[i].CompletedDates = []string{}
		}
	}

	return state, errors.Join(errs...)
}

// SaveState writes the four state keys together.
func (r *Repository) SaveState(state models.State) error {
	values := make(map[string][]byte, len(constants.StateKeys))
	for key, v := range map[string]any{
		constants.KeyHabits:  nonNil(state.Habits),
		constants.KeyGoals:   nonNil(state.Goals),
		constants.KeyRewards: nonNil(state.Rewards),
		constants.KeyStats:   state.Stats,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		values[key] = data
	}

	if err := r.provider.PutMany(values); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// LastReset returns the last-reset marker, or "" when none is stored.
func (r *Repository) LastReset() (string, error) {
	var day string
	if err := r.getJSON(constants.KeyLastResetDate, &day); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", constants.KeyLastResetDate, err)
	}
	if !utils.ValidateDate(day) {
		return "", fmt.Errorf("%s: invalid date %q", constants.KeyLastResetDate, day)
	}
	return day, nil
}

func (r *Repository) SetLastReset(day string) error {
	return r.putJSON(constants.KeyLastResetDate, day)
}

// DarkMode returns the stored theme preference, false when unset.
func (r *Repository) DarkMode() (bool, error) {
	var dark bool
	if err := r.getJSON(constants.KeyDarkMode, &dark); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", constants.KeyDarkMode, err)
	}
	return dark, nil
}

func (r *Repository) SetDarkMode(dark bool) error {
	return r.putJSON(constants.KeyDarkMode, dark)
}

// Snapshot is the portable document written by Export and read by Import.
type Snapshot struct {
	Version       int              `json:"version"`
	ExportedAt    time.Time        `json:"exported_at"`
	Habits        []models.Habit   `json:"habits"`
	Goals         []models.Goal    `json:"goals"`
	Rewards       []models.Reward  `json:"rewards"`
	Stats         models.UserStats `json:"stats"`
	DarkMode      bool             `json:"darkMode"`
	LastResetDate string           `json:"lastResetDate,omitempty"`
}

// Export writes the whole store as one indented JSON document.
func (r *Repository) Export(w io.Writer, now time.Time) error {
	state, err := r.LoadState(now)
	if err != nil {
		return fmt.Errorf("refusing to export partially unreadable store: %w", err)
	}
	dark, err := r.DarkMode()
	if err != nil {
		return err
	}
	lastReset, err := r.LastReset()
	if err != nil {
		return err
	}

	snap := Snapshot{
		Version:       ExportVersion,
		ExportedAt:    now.UTC(),
		Habits:        state.Habits,
		Goals:         nonNil(state.Goals),
		Rewards:       nonNil(state.Rewards),
		Stats:         state.Stats,
		DarkMode:      dark,
		LastResetDate: lastReset,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Import replaces the stored state with a document produced by Export.
func (r *Repository) Import(rd io.Reader) (Snapshot, error) {
	var snap Snapshot
	dec := json.NewDecoder(rd)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse export: %w", err)
	}
	if snap.Version < 1 || snap.Version > ExportVersion {
		return Snapshot{}, fmt.Errorf("unsupported export version %d", snap.Version)
	}
	if snap.LastResetDate != "" && !utils.ValidateDate(snap.LastResetDate) {
		return Snapshot{}, fmt.Errorf("invalid lastResetDate %q", snap.LastResetDate)
	}

	state := models.State{
		Habits:  snap.Habits,
		Goals:   snap.Goals,
		Rewards: snap.Rewards,
		Stats:   snap.Stats,
	}
	if err := r.SaveState(state); err != nil {
		return Snapshot{}, err
	}
	if err := r.SetDarkMode(snap.DarkMode); err != nil {
		return Snapshot{}, err
	}
	if snap.LastResetDate != "" {
		if err := r.SetLastReset(snap.LastResetDate); err != nil {
			return Snapshot{}, err
		}
	}

	logger.Info("Imported snapshot", "habits", len(snap.Habits), "goals", len(snap.Goals), "rewards", len(snap.Rewards))
	return snap, nil
}

func (r *Repository) getJSON(key string, dst any) error {
	data, err := r.provider.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("corrupt value: %w", err)
	}
	return nil
}

func (r *Repository) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.provider.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func appendUnlessMissing(errs []error, key string, err error) []error {
	if errors.Is(err, ErrNotFound) {
		logger.Debug("Seeding missing key", "key", key)
		return errs
	}
	logger.Warn("Falling back to seed data", "key", key, "error", err)
	return append(errs, fmt.Errorf("%s: %w", key, err))
}

// nonNil keeps empty collections encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
