// Package config resolves habitquest settings from the YAML config file, an
// optional .env file, and HABITQUEST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/utils"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Backups struct {
	Enabled bool `yaml:"enabled"`
	Keep    int  `yaml:"keep"`
}

type Config struct {
	// Storage is a file path (SQLite or *.json), a postgres:// or redis:// URL,
	// "keyring" to read the URL from the OS keyring, or ":memory:".
	Storage  string  `yaml:"storage"`
	Timezone string  `yaml:"timezone"`
	Debug    bool    `yaml:"debug"`
	Backups  Backups `yaml:"backups"`

	// Dir is the config directory the file was resolved against.
	Dir string `yaml:"-"`
}

// Default returns the built-in settings rooted at dir.
func Default(dir string) Config {
	return Config{
		Storage:  filepath.Join(dir, filepath.Base(constants.DefaultStoragePath)),
		Timezone: constants.DefaultTimezone,
		Backups: Backups{
			Enabled: constants.DefaultBackupsOn,
			Keep:    constants.MaxBackups,
		},
		Dir: dir,
	}
}

// Load reads <dir>/config.yaml and <dir>/.env when present, applies
// environment overrides and validates the result. Missing files are not an error.
func Load(dir string) (Config, error) {
	dir, err := ExpandPath(dir)
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	raw, err := os.ReadFile(filepath.Join(dir, constants.DefaultConfigFile))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	// Variables already set in the environment win over the .env file.
	envFile := filepath.Join(dir, constants.DefaultEnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.Storage, err = ExpandPath(cfg.Storage); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.EnvStorage); v != "" {
		c.Storage = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(constants.EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, constants.EnvDebug, v)
		}
		c.Debug = debug
	}
	if v := os.Getenv(constants.EnvBackupKeep); v != "" {
		keep, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, constants.EnvBackupKeep, v)
		}
		c.Backups.Keep = keep
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage) == "" {
		return fmt.Errorf("%w: storage cannot be empty", ErrInvalidConfig)
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, c.Timezone)
	}
	if c.Backups.Keep < 1 {
		return fmt.Errorf("%w: backups.keep must be at least 1, got %d", ErrInvalidConfig, c.Backups.Keep)
	}
	return nil
}

// Save writes the config file, creating the directory if needed.
func (c Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(filepath.Join(c.Dir, constants.DefaultConfigFile), data, 0600)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
