// Package memory provides an in-process StateStore backed by a map.
package memory

import (
	"context"
	"sync"
	"time"

	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
)

// Store keeps instance state in memory. Updates are serialized and applied
// only when the callback succeeds.
type Store struct {
	mu        sync.Mutex
	entries   map[portsrepo.Key][]byte
	liveUntil time.Time
	policy    portsrepo.TTLPolicy
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for TTL bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty in-memory store.
func NewStore(policy portsrepo.TTLPolicy, options ...Option) *Store {
	s := &Store{
		entries: make(map[portsrepo.Key][]byte),
		policy:  policy,
		now:     time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portsrepo.StateStore = (*Store)(nil)

// Get returns a copy of the stored value.
func (s *Store) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Update runs fn against a write buffer and merges it on success.
func (s *Store) Update(ctx context.Context, fn func(tx portsrepo.StateTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:     s,
		writes:    make(map[portsrepo.Key][]byte),
		liveUntil: s.liveUntil,
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for k, v := range tx.writes {
		s.entries[k] = v
	}
	s.liveUntil = tx.liveUntil
	return nil
}

// LiveUntil reports the retention horizon set by the last ExtendTTL.
func (s *Store) LiveUntil(_ context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveUntil, nil
}

// Entries returns a copy of every committed entry.
func (s *Store) Entries() map[portsrepo.Key][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[portsrepo.Key][]byte, len(s.entries))
	for k, v := range s.entries {
		out[k] = clone(v)
	}
	return out
}

// memTx is only used while the store mutex is held.
type memTx struct {
	store     *Store
	writes    map[portsrepo.Key][]byte
	liveUntil time.Time
}

func (t *memTx) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if v, ok := t.writes[key]; ok {
		return clone(v), true, nil
	}
	v, ok := t.store.entries[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (t *memTx) Set(ctx context.Context, key portsrepo.Key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.writes[key] = clone(value)
	return nil
}

func (t *memTx) ExtendTTL(ctx context.Context, readThreshold, extendTo uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.liveUntil = t.store.policy.Extend(t.store.now(), t.liveUntil, readThreshold, extendTo)
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
