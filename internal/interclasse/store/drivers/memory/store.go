// Package memory is an in-process KV driver used for browser-session state
// and tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
)

type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

type Option func(*Store)

// WithTTL expires every written entry after d.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{data: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ store.KV      = (*Store)(nil)
	_ store.Expirer = (*Store)(nil)
)

func (s *Store) live(e entry, now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

func (s *Store) entry(value string) entry {
	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || !s.live(e, s.now()) {
		return "", store.ErrNotFound
	}
	return e.value, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = s.entry(value)
	return nil
}

func (s *Store) SetMulti(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, v := range entries {
		s.data[k] = s.entry(v)
	}
	return nil
}

func (s *Store) Update(_ context.Context, keys []string, fn store.UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	current := make(map[string]string, len(keys))
	for _, k := range keys {
		if e, ok := s.data[k]; ok && s.live(e, now) {
			current[k] = e.value
		}
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	for k, v := range next {
		s.data[k] = s.entry(v)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var keys []string
	for k, e := range s.data {
		if strings.HasPrefix(k, prefix) && s.live(e, now) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *Store) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for k, e := range s.data {
		if !s.live(e, now) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
