package store

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("store: not found")
	ErrDuplicateEmail = errors.New("store: email already registered")
	ErrStorageWrite   = errors.New("store: write failed")
	// ErrConflict is returned when an Update keeps losing races to other writers.
	ErrConflict = errors.New("store: concurrent update conflict")
)

// UpdateFunc receives the live values of the watched keys (absent keys are
// omitted) and returns the entries to write. It may run more than once and
// must not have side effects beyond its return values.
type UpdateFunc func(current map[string]string) (map[string]string, error)

// Well-known keys. Their names and JSON shapes are part of the persisted contract.
const (
	KeyUsers   = "interclasse_users"
	KeyTeams   = "interclasse_teams"
	KeyMatches = "interclasse_matches"
	KeyPhotos  = "interclasse_photos"

	KeyCurrentUser       = "currentUser"
	KeyRegistrationDraft = "registrationDraft"
)

// KV is a string-keyed store of JSON-encoded values. Drivers live under
// store/drivers and must be safe for concurrent use.
type KV interface {
	// Get returns ErrNotFound when key is absent or expired.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key, value string) error

	// SetMulti writes every entry or none of them.
	SetMulti(ctx context.Context, entries map[string]string) error

	// Update is an atomic read-modify-write over keys. No other write to
	// those keys, from this process or another, can land between the read
	// and the write. An error from fn aborts without writing and is
	// returned unchanged.
	Update(ctx context.Context, keys []string, fn UpdateFunc) error

	// Delete removes keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists live keys starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Expirer is implemented by drivers that need expired entries swept
// explicitly. Redis expires keys on its own and does not implement it.
type Expirer interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type scoped struct {
	kv     KV
	prefix string
}

// Scoped returns a view of kv where every key is transparently prefixed.
// Closing the view does not close kv.
func Scoped(kv KV, prefix string) KV {
	return &scoped{kv: kv, prefix: prefix}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.kv.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, s.prefix+key, value)
}

func (s *scoped) SetMulti(ctx context.Context, entries map[string]string) error {
	prefixed := make(map[string]string, len(entries))
	for k, v := range entries {
		prefixed[s.prefix+k] = v
	}
	return s.kv.SetMulti(ctx, prefixed)
}

func (s *scoped) Update(ctx context.Context, keys []string, fn UpdateFunc) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.kv.Update(ctx, prefixed, func(current map[string]string) (map[string]string, error) {
		plain := make(map[string]string, len(current))
		for k, v := range current {
			plain[strings.TrimPrefix(k, s.prefix)] = v
		}
		next, err := fn(plain)
		if err != nil {
			return nil, err
		}
		out := make(map[string]string, len(next))
		for k, v := range next {
			out[s.prefix+k] = v
		}
		return out, nil
	})
}

func (s *scoped) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.prefix + k
	}
	return s.kv.Delete(ctx, prefixed...)
}

func (s *scoped) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.kv.Keys(ctx, s.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, s.prefix)
	}
	return keys, nil
}

func (s *scoped) Ping(ctx context.Context) error { return s.kv.Ping(ctx) }

func (s *scoped) Close() error { return nil }

// SessionPrefix namespaces browser-session keys for scope id.
func SessionPrefix(id string) string { return "session:" + id + ":" }

// DevicePrefix namespaces remembered-device keys for scope id.
func DevicePrefix(id string) string { return "device:" + id + ":" }
