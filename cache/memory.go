// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRevocationStore is an in-process RevocationStore
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[uuid.UUID]time.Time
	now     func() time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[uuid.UUID]time.Time), now: time.Now}
}

func (s *MemoryRevocationStore) MarkRevoked(_ context.Context, sessionID uuid.UUID, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, id)
		}
	}
	if now.Before(expiresAt) {
		s.revoked[sessionID] = expiresAt
	}
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, sessionID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.revoked[sessionID]
	return ok && s.now().Before(exp), nil
}

type memoryLockout struct {
	state   LockoutState
	expires time.Time
}

// MemoryLockoutStore is an in-process LockoutStore
type MemoryLockoutStore struct {
	mu      sync.Mutex
	entries map[string]memoryLockout
	now     func() time.Time
}

func NewMemoryLockoutStore() *MemoryLockoutStore {
	return &MemoryLockoutStore{entries: make(map[string]memoryLockout), now: time.Now}
}

func (s *MemoryLockoutStore) Get(_ context.Context, key string) (LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expires) {
		delete(s.entries, key)
		return LockoutState{}, nil
	}
	return e.state, nil
}

func (s *MemoryLockoutStore) RecordFailure(_ context.Context, key string, now time.Time, threshold int, window time.Duration) (LockoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expires) {
		e = memoryLockout{}
	}

	e.state.FailedCount++
	e.expires = now.Add(window)
	state := e.state
	if e.state.FailedCount >= threshold {
		lockedUntil := now.Add(window).UTC()
		e.state = LockoutState{LockedUntil: &lockedUntil}
		state.LockedUntil = &lockedUntil
	}
	s.entries[key] = e
	return state, nil
}

func (s *MemoryLockoutStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
