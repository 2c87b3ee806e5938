package main

import (
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitquest/internal/cli"
	"github.com/julianstephens/habitquest/internal/cli/backups"
	"github.com/julianstephens/habitquest/internal/cli/goals"
	"github.com/julianstephens/habitquest/internal/cli/habits"
	"github.com/julianstephens/habitquest/internal/cli/rewards"
	"github.com/julianstephens/habitquest/internal/cli/system"
	"github.com/julianstephens/habitquest/internal/config"
	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/errors"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, logs and backups." type:"path" default:"${config_dir}"`
	Storage   string `help:"Override the configured storage (path, postgres:// or redis:// URL, keyring, :memory:)."`
	Timezone  string `help:"Override the configured timezone (IANA name or Local)."`
	Debug     bool   `help:"Enable debug logging to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize habitquest storage."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit    habits.HabitCmd    `cmd:"" help:"Manage daily habits."`
	Goal     goals.GoalCmd      `cmd:"" help:"Manage goals."`
	Reward   rewards.RewardCmd  `cmd:"" help:"Manage rewards."`
	Stats    system.StatsCmd    `cmd:"" help:"Show today's progress, balance and streak."`
	Calendar system.CalendarCmd `cmd:"" help:"Show perfect days for a month."`
	Theme    system.ThemeCmd    `cmd:"" help:"Show or change the TUI theme."`
	Export   system.ExportCmd   `cmd:"" help:"Export all data as JSON."`
	Import   system.ImportCmd   `cmd:"" help:"Replace all data from a JSON export."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks on the store and data."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup file."`
	} `cmd:"" help:"Manage store backups."`
	System struct {
		Keyring system.KeyringCmd `cmd:"" help:"Manage the connection string stored in the OS keyring."`
		Debug   system.DebugCmd   `cmd:"" help:"Inspect the raw store."`
	} `cmd:"" help:"System utilities."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gamified habit tracker: earn points for habits, spend them on rewards."),
		kong.UsageOnError(),
		kong.Vars{
			"version":      constants.Version,
			"config_dir":   constants.DefaultConfigDir,
			"habit_points": strconv.Itoa(constants.DefaultHabitPoints),
			"goal_target":  strconv.Itoa(constants.DefaultGoalTarget),
			"reward_cost":  strconv.Itoa(constants.DefaultRewardCost),
		},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		errors.Fatal(err)
	}
	if err := applyOverrides(&cfg); err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()
	logger.Debug("Starting command", "command", ctx.Command(), "storage", cfg.Storage)

	clock, err := cli.NewClock(cfg.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	// Keyring management must work before any store is reachable.
	var store storage.Provider = storage.NewMemoryStore()
	if !strings.HasPrefix(ctx.Command(), "system keyring") {
		if store, err = cli.NewProvider(cfg.Storage); err != nil {
			errors.Fatal(err)
		}
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatalf("failed to load store: %v (run 'habitquest init' first)", err)
		}
	}

	appCtx := cli.NewContext(cfg, store, clock)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	if err != nil {
		errors.Fatal(err)
	}
}

func applyOverrides(cfg *config.Config) error {
	if CLI.Storage != "" {
		storagePath, err := config.ExpandPath(CLI.Storage)
		if err != nil {
			return err
		}
		cfg.Storage = storagePath
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// needsLoad reports whether the command expects an initialized store.
// init creates it and doctor reports the failure itself.
func needsLoad(command string) bool {
	for _, prefix := range []string{"init", "doctor", "system keyring"} {
		if strings.HasPrefix(command, prefix) {
			return false
		}
	}
	return true
}
