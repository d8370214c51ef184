package data

import (
	"sync"

	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
)

// MemoryStore is a Store kept entirely in process memory. Payloads are
// held in their serialized form so the codec path is identical to the
// durable backends. It backs the test suite and the "memory" storage
// setting for throwaway development runs; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string][]byte
	logger   *jsonlog.Logger
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore(logger *jsonlog.Logger) *MemoryStore {
	return &MemoryStore{
		payloads: make(map[string][]byte),
		logger:   logger,
	}
}

func (s *MemoryStore) LoadGenres() ([]*Genre, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeGenres(s.payloads[keyGenres], s.logger), nil
}

func (s *MemoryStore) SaveGenres(genres []*Genre) error {
	payload, err := encodeGenres(genres)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[keyGenres] = payload
	return nil
}

func (s *MemoryStore) LoadMovies() ([]*Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeMovies(s.payloads[keyMovies], s.logger), nil
}

func (s *MemoryStore) SaveMovies(movies []*Movie) error {
	payload, err := encodeMovies(movies)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads[keyMovies] = payload
	return nil
}

func (s *MemoryStore) LoadStagedEditID() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decodeStagedEditID(s.payloads[keyStagedEdit], s.logger), nil
}

func (s *MemoryStore) SaveStagedEditID(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == 0 {
		delete(s.payloads, keyStagedEdit)
		return nil
	}

	payload, err := encodeStagedEditID(id)
	if err != nil {
		return err
	}
	s.payloads[keyStagedEdit] = payload
	return nil
}
