package store

import (
	"context"
	"sync"
	"time"

	"pos-admin-gateway/internal/domains/cart/model"
)

type memoryEntry struct {
	cart      *model.Cart
	expiresAt time.Time
}

// MemoryStore is the default cart store: per-session carts held in
// process memory with a TTL. Carts vanish on restart; run the redis
// store when that matters.
//
// Expired entries are evicted on access and swept on Save at most once
// per TTL, so the map does not grow with session churn.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	ttl       time.Duration
	nextSweep time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*model.Cart, error) {
	s.mu.Lock()
	entry, ok := s.entries[sessionID]
	if ok && time.Now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return model.NewCart(), nil
	}

	// Return a copy so callers cannot mutate stored state without Save.
	cp := *entry.cart
	cp.Lines = append([]model.CartLine(nil), entry.cart.Lines...)
	return &cp, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, cart *model.Cart) error {
	cp := *cart
	cp.Lines = append([]model.CartLine(nil), cart.Lines...)

	now := time.Now()

	s.mu.Lock()
	if now.After(s.nextSweep) {
		for id, entry := range s.entries {
			if now.After(entry.expiresAt) {
				delete(s.entries, id)
			}
		}
		s.nextSweep = now.Add(s.ttl)
	}

	s.entries[sessionID] = memoryEntry{
		cart:      &cp,
		expiresAt: now.Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}
