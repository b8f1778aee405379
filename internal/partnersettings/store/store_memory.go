package store

import (
	"context"
	"encoding/json"
	"sync"

	"checkout/internal/pidl/feature"
)

// InMemoryStore keeps feature tables in process. Tables are stored encoded
// so callers never share maps with the store.
type InMemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tables: make(map[string][]byte)}
}

func (s *InMemoryStore) Find(_ context.Context, partner string) (feature.PartnerConfig, error) {
	s.mu.RLock()
	raw, ok := s.tables[normalizePartner(partner)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var cfg feature.PartnerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *InMemoryStore) Save(_ context.Context, partner string, cfg feature.PartnerConfig) error {
	partner = normalizePartner(partner)
	if err := validate(partner, cfg); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tables[partner] = raw
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, partner string) error {
	s.mu.Lock()
	delete(s.tables, normalizePartner(partner))
	s.mu.Unlock()
	return nil
}
