package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/habitquest/internal/constants"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{constants.EnvStorage, constants.EnvTimezone, constants.EnvDebug, constants.EnvBackupKeep} {
		// Setenv registers the restore; the variable must then be absent
		// so godotenv is allowed to set it.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := filepath.Join(dir, "habitquest.db"); cfg.Storage != want {
		t.Errorf("Storage = %q, want %q", cfg.Storage, want)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if !cfg.Backups.Enabled || cfg.Backups.Keep != constants.MaxBackups {
		t.Errorf("Backups = %+v", cfg.Backups)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	writeFile(t, dir, constants.DefaultConfigFile, `
storage: /data/quest.json
timezone: UTC
debug: false
backups:
  enabled: false
  keep: 5
`)
	writeFile(t, dir, constants.DefaultEnvFileName, "HABITQUEST_BACKUP_KEEP=7\nHABITQUEST_DEBUG=true\n")
	t.Setenv(constants.EnvTimezone, "Asia/Tokyo")
	// An explicit variable beats the .env file.
	t.Setenv(constants.EnvBackupKeep, "9")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage != "/data/quest.json" {
		t.Errorf("Storage = %q", cfg.Storage)
	}
	if cfg.Timezone != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want env override", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Debug should come from .env")
	}
	if cfg.Backups.Enabled {
		t.Error("Backups.Enabled should come from the file")
	}
	if cfg.Backups.Keep != 9 {
		t.Errorf("Backups.Keep = %d, want 9", cfg.Backups.Keep)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"bad yaml", "storage: [unterminated", nil},
		{"bad timezone", "timezone: Mars/Olympus", nil},
		{"zero keep", "backups:\n  keep: 0", nil},
		{"non numeric keep", "", map[string]string{constants.EnvBackupKeep: "many"}},
		{"non boolean debug", "", map[string]string{constants.EnvDebug: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			if tt.file != "" {
				writeFile(t, dir, constants.DefaultConfigFile, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(dir); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestValidateReportsInvalidConfig(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Storage = " "
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := Default(dir)
	cfg.Storage = "redis://localhost:6379/0"
	cfg.Timezone = "UTC"
	cfg.Backups.Keep = 3
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := map[string]string{
		"~":                  home,
		"~/quest/data.db":    filepath.Join(home, "quest/data.db"),
		"/abs/path.db":       "/abs/path.db",
		"relative/~/file.db": "relative/~/file.db",
		"redis://host:6379":  "redis://host:6379",
	}
	for in, want := range tests {
		got, err := ExpandPath(in)
		if err != nil || got != want {
			t.Errorf("ExpandPath(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
}
