package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/habitquest/internal/constants"
	"github.com/julianstephens/habitquest/internal/storage"
)

// schemaVersion is stored under the schema key and bumped when the key layout changes.
const schemaVersion = 1

const defaultTimeout = 5 * time.Second

var ErrInvalidURL = errors.New("invalid Redis URL")

// Store keeps each key as a Redis string under a "habitquest:" prefix.
type Store struct {
	opts    *goredis.Options
	client  *goredis.Client
	prefix  string
	timeout time.Duration
}

// New parses a redis:// or rediss:// URL. No connection is made until Init or Load.
func New(redisURL string) (*Store, error) {
	if !strings.HasPrefix(redisURL, "redis://") && !strings.HasPrefix(redisURL, "rediss://") {
		return nil, fmt.Errorf("%w: expected redis:// or rediss:// scheme", ErrInvalidURL)
	}
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	return &Store{
		opts:    opts,
		prefix:  constants.RedisKeyPrefix,
		timeout: defaultTimeout,
	}, nil
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) schemaKey() string {
	return s.key("schema_version")
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *Store) connect() error {
	if s.client != nil {
		return nil
	}
	client := goredis.NewClient(s.opts)

	ctx, cancel := s.ctx()
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	s.client = client
	return nil
}

// Init connects and records the key layout version.
func (s *Store) Init() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := s.ctx()
	defer cancel()

	current, err := s.version(ctx)
	if err != nil {
		return err
	}
	if current > schemaVersion {
		return fmt.Errorf("redis key layout version %d is newer than supported version %d", current, schemaVersion)
	}
	return s.client.Set(ctx, s.schemaKey(), schemaVersion, 0).Err()
}

func (s *Store) Load() error {
	if err := s.connect(); err != nil {
		return err
	}
	ctx, cancel := s.ctx()
	defer cancel()

	current, err := s.version(ctx)
	if err != nil {
		return err
	}
	if current == 0 {
		return storage.ErrNotInitialized
	}
	if current > schemaVersion {
		return fmt.Errorf("redis key layout version %d is newer than supported version %d", current, schemaVersion)
	}
	return nil
}

func (s *Store) version(ctx context.Context) (int, error) {
	raw, err := s.client.Get(ctx, s.schemaKey()).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid schema version %q", raw)
	}
	return v, nil
}

func (s *Store) Close() error {
	if s.client != nil {
		err := s.client.Close()
		s.client = nil
		return err
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.client == nil {
		return nil, storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return raw, nil
}

func (s *Store) Put(key string, value []byte) error {
	return s.PutMany(map[string][]byte{key: value})
}

// PutMany writes all values inside MULTI/EXEC.
func (s *Store) PutMany(values map[string][]byte) error {
	if s.client == nil {
		return storage.ErrNotLoaded
	}
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, s.key(key), value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// GetConfigPath returns the server address without credentials.
func (s *Store) GetConfigPath() string {
	return fmt.Sprintf("redis://%s/%d", s.opts.Addr, s.opts.DB)
}
