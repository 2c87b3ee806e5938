package cli

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/keyring"
	"github.com/julianstephens/habitquest/internal/logger"
	"github.com/julianstephens/habitquest/internal/storage"
	"github.com/julianstephens/habitquest/internal/storage/postgres"
	"github.com/julianstephens/habitquest/internal/storage/redis"
	"github.com/julianstephens/habitquest/internal/storage/sqlite"
)

var ErrEmbeddedPassword = errors.New("connection strings with embedded passwords are not allowed in config; store them with 'habitquest system keyring set' or " + constants.EnvStorageSecret)

// NewProvider picks the store implementation for a storage setting.
func NewProvider(setting string) (storage.Provider, error) {
	setting = strings.TrimSpace(setting)
	switch {
	case setting == constants.StorageMemory:
		return storage.NewMemoryStore(), nil
	case setting == constants.StorageKeyring:
		connStr, source, err := keyring.LookupConnectionString()
		if err != nil {
			return nil, fmt.Errorf("no connection string in %s or the OS keyring: %w", constants.EnvStorageSecret, err)
		}
		logger.Debug("Using stored connection string", "source", source, "conn", keyring.Redact(connStr))
		return newServerProvider(connStr, true)
	case IsPostgres(setting), IsRedis(setting):
		return newServerProvider(setting, false)
	case strings.EqualFold(filepath.Ext(setting), ".json"):
		return storage.NewJSONStore(setting), nil
	default:
		return sqlite.NewStore(setting), nil
	}
}

// newServerProvider builds a postgres or redis store. Passwords are only
// accepted from trusted sources (environment or keyring).
func newServerProvider(connStr string, trusted bool) (storage.Provider, error) {
	switch {
	case IsRedis(connStr):
		if !trusted && urlHasPassword(connStr) {
			return nil, ErrEmbeddedPassword
		}
		return redis.New(connStr)
	case IsPostgres(connStr) || strings.Contains(connStr, "host="):
		if _, err := postgres.ValidateConnString(connStr); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, err
			}
			if !trusted {
				return nil, ErrEmbeddedPassword
			}
		}
		return postgres.New(connStr), nil
	default:
		return nil, fmt.Errorf("unsupported connection string %q (want postgres:// or redis://)", keyring.Redact(connStr))
	}
}

func IsPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func IsRedis(s string) bool {
	return strings.HasPrefix(s, "redis://") || strings.HasPrefix(s, "rediss://")
}

func urlHasPassword(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.User == nil {
		return false
	}
	_, ok := u.User.Password()
	return ok
}
