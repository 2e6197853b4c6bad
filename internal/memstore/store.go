package memstore

import (
	"context"
	"sync"

	"github.com/mtgtools/buylistdb/internal/domain"
)

// Store implements domain.CacheStore in memory. Nothing survives the
// process; used for tests and the "memory" cache backend.
type Store struct {
	mu       sync.RWMutex
	payloads map[string][]byte
	dates    map[string]string
}

func NewStore() *Store {
	return &Store{
		payloads: make(map[string][]byte),
		dates:    make(map[string]string),
	}
}

var _ domain.CacheStore = (*Store)(nil)

func (s *Store) Get(ctx context.Context, namespace string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.payloads[namespace]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return append([]byte(nil), payload...), s.dates[namespace], nil
}

func (s *Store) Put(ctx context.Context, namespace string, payload []byte, cachedOn string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.payloads[namespace] = append([]byte(nil), payload...)
	s.dates[namespace] = cachedOn
	return nil
}

func (s *Store) Delete(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.payloads, namespace)
	delete(s.dates, namespace)
	return nil
}

func (s *Store) List(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]string, len(s.dates))
	for ns, d := range s.dates {
		result[ns] = d
	}
	return result, nil
}

func (s *Store) Close() error {
	return nil
}
