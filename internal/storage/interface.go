package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
	// ErrNotInitialized is returned by Load when the store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'habitquest init' first")
)

// Provider is a key-value store holding JSON documents under a small fixed set of keys.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Values
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	// PutMany writes all values in one transaction where the backend allows it.
	PutMany(values map[string][]byte) error

	// Utils
	GetConfigPath() string
}
