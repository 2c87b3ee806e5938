package storage

import (
	"maps"
	"sync"

	"github.com/julianstephens/habitquest/internal/constants"
)

// MemoryStore is a Provider that lives only for the process. Used by tests
// and by `habitquest --storage :memory:`.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	return s.PutMany(map[string][]byte{key: value})
}

func (s *MemoryStore) PutMany(values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range values {
		s.data[key] = append([]byte(nil), value...)
	}
	return nil
}

// Dump returns a copy of the stored data.
func (s *MemoryStore) Dump() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.data)
}

func (s *MemoryStore) GetConfigPath() string {
	return constants.StorageMemory
}
