package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore implementa ProfileStore en memoria.
// Backend default: el server corre sin base de datos.
type memoryStore struct {
	mu      sync.RWMutex
	byPhone map[string]*Profile
}

// NewMemoryStore crea un ProfileStore en memoria.
func NewMemoryStore() ProfileStore {
	return &memoryStore{byPhone: make(map[string]*Profile)}
}

func (s *memoryStore) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byPhone[phone]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) Upsert(ctx context.Context, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		if prev, ok := s.byPhone[p.Phone]; ok {
			p.CreatedAt = prev.CreatedAt
		} else {
			p.CreatedAt = now
		}
	}
	p.UpdatedAt = now
	cp := *p
	s.byPhone[p.Phone] = &cp
	return nil
}

func (s *memoryStore) Close() error { return nil }
