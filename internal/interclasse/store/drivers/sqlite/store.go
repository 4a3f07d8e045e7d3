// Package sqlite is the durable KV driver backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
	ttl time.Duration
	now func() time.Time
}

type Option func(*Store)

// WithTTL expires every written entry after d. Expired rows are invisible to
// reads and removed by DeleteExpired.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

var (
	_ store.KV      = (*Store)(nil)
	_ store.Expirer = (*Store)(nil)
)

func NewStore(dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps :memory: databases coherent and serialises
	// writers without relying on busy timeouts.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dsn: dsn, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn in a transaction, committing only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) millis() int64 { return s.now().UnixMilli() }

func (s *Store) expiry() sql.NullInt64 {
	if s.ttl <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: s.now().Add(s.ttl).UnixMilli(), Valid: true}
}

const (
	getSQL = `SELECT value FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`

	upsertSQL = `INSERT INTO kv (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at, updated_at = excluded.updated_at`

	deleteSQL = `DELETE FROM kv WHERE key = ?`

	keysSQL = `SELECT key FROM kv WHERE substr(key, 1, length(?1)) = ?1 AND (expires_at IS NULL OR expires_at > ?2)`

	deleteExpiredSQL = `DELETE FROM kv WHERE expires_at IS NOT NULL AND expires_at <= ?`
)

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, getSQL, key, s.millis()).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, upsertSQL, key, value, s.expiry(), s.millis())
	return err
}

func (s *Store) SetMulti(ctx context.Context, entries map[string]string) error {
	exp, now := s.expiry(), s.millis()
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		for k, v := range entries {
			if _, err := tx.ExecContext(ctx, upsertSQL, k, v, exp, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update holds a RESERVED lock (BEGIN IMMEDIATE) from the read to the
// commit, so writers in other processes sharing the file wait on
// busy_timeout instead of interleaving.
func (s *Store) Update(ctx context.Context, keys []string, fn store.UpdateFunc) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
		}
	}()

	now := s.millis()
	current := make(map[string]string, len(keys))
	for _, k := range keys {
		var v string
		err := conn.QueryRowContext(ctx, getSQL, k, now).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return err
		}
		current[k] = v
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	exp := s.expiry()
	for k, v := range next {
		if _, err := conn.ExecContext(ctx, upsertSQL, k, v, exp, now); err != nil {
			return err
		}
	}
	_, err = conn.ExecContext(ctx, "COMMIT")
	return err
}

func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.WithTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, deleteSQL, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, keysSQL, prefix, s.millis())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, deleteExpiredSQL, s.millis())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
