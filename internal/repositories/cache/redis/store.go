// Package redis provides a StateStore backed by Redis. Each entry lives
// under "<namespace>:state:<key>"; a version key guards optimistic
// transactions and the retention horizon is applied with PEXPIREAT.
package redis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SscSPs/community_currency/internal/apperrors"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
)

const defaultMaxRetries = 16

// ErrConflict is returned when an update keeps losing optimistic races.
var ErrConflict = errors.New("redis state update conflict")

// Store keeps the state of one ledger instance in Redis.
type Store struct {
	rdb        goredis.UniversalClient
	namespace  string
	policy     portsrepo.TTLPolicy
	maxRetries int
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithMaxRetries bounds how often an update is retried after a lost race.
func WithMaxRetries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewClient dials Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewStore creates a store for namespace on top of rdb.
func NewStore(rdb goredis.UniversalClient, namespace string, policy portsrepo.TTLPolicy, options ...Option) *Store {
	s := &Store{
		rdb:        rdb,
		namespace:  namespace,
		policy:     policy,
		maxRetries: defaultMaxRetries,
		now:        time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portsrepo.StateStore = (*Store)(nil)

func (s *Store) stateKey(key portsrepo.Key) string {
	return s.namespace + ":state:" + string(key)
}

func (s *Store) indexKey() string     { return s.namespace + ":keys" }
func (s *Store) versionKey() string   { return s.namespace + ":version" }
func (s *Store) liveUntilKey() string { return s.namespace + ":live_until" }

// Get reads one committed entry.
func (s *Store) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	return getEntry(ctx, s.rdb, s.stateKey(key))
}

// LiveUntil reads the retention horizon of the instance.
func (s *Store) LiveUntil(ctx context.Context) (time.Time, error) {
	return readLiveUntil(ctx, s.rdb, s.liveUntilKey())
}

// Update runs fn optimistically: reads go through a WATCHed connection and
// writes are buffered, then applied in one MULTI/EXEC. A concurrent update
// aborts the EXEC and fn is run again on fresh state.
func (s *Store) Update(ctx context.Context, fn func(tx portsrepo.StateTx) error) error {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *goredis.Tx) error {
			return s.attempt(ctx, tx, fn)
		}, s.versionKey())
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return apperrors.NewAppError(http.StatusServiceUnavailable, "state update retries exhausted", ErrConflict)
}

func (s *Store) attempt(ctx context.Context, tx *goredis.Tx, fn func(tx portsrepo.StateTx) error) error {
	current, err := readLiveUntil(ctx, tx, s.liveUntilKey())
	if err != nil {
		return err
	}

	rtx := &redisTx{
		store:     s,
		tx:        tx,
		writes:    make(map[portsrepo.Key][]byte),
		liveUntil: current,
	}
	if err := fn(rtx); err != nil {
		return err
	}
	if len(rtx.writes) == 0 && rtx.liveUntil.Equal(current) {
		return nil
	}

	horizonMoved := !rtx.liveUntil.Equal(current)
	var existing []string
	if horizonMoved {
		existing, err = tx.SMembers(ctx, s.indexKey()).Result()
		if err != nil {
			return fmt.Errorf("listing state keys: %w", err)
		}
	}

	_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range rtx.writes {
			pipe.Set(ctx, s.stateKey(key), value, goredis.KeepTTL)
			pipe.SAdd(ctx, s.indexKey(), s.stateKey(key))
		}
		pipe.Incr(ctx, s.versionKey())

		if rtx.liveUntil.IsZero() {
			return nil
		}
		if horizonMoved {
			pipe.Set(ctx, s.liveUntilKey(), strconv.FormatInt(rtx.liveUntil.UnixMilli(), 10), 0)
		}

		expireKeys := []string{s.indexKey(), s.versionKey(), s.liveUntilKey()}
		expireKeys = append(expireKeys, existing...)
		for key := range rtx.writes {
			expireKeys = append(expireKeys, s.stateKey(key))
		}
		for _, k := range expireKeys {
			pipe.PExpireAt(ctx, k, rtx.liveUntil)
		}
		return nil
	})
	return err
}

type redisTx struct {
	store     *Store
	tx        *goredis.Tx
	writes    map[portsrepo.Key][]byte
	liveUntil time.Time
}

func (t *redisTx) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	if v, ok := t.writes[key]; ok {
		out := make([]byte, len(v))
		copy(out, v)
		return out, true, nil
	}
	return getEntry(ctx, t.tx, t.store.stateKey(key))
}

func (t *redisTx) Set(ctx context.Context, key portsrepo.Key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	t.writes[key] = buf
	return nil
}

func (t *redisTx) ExtendTTL(ctx context.Context, readThreshold, extendTo uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.liveUntil = t.store.policy.Extend(t.store.now(), t.liveUntil, readThreshold, extendTo)
	return nil
}

// getter is satisfied by both the client and a watched transaction.
type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func getEntry(ctx context.Context, c getter, key string) ([]byte, bool, error) {
	v, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// live_until is stored as Unix milliseconds.
func readLiveUntil(ctx context.Context, c getter, key string) (time.Time, error) {
	ms, err := c.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("redis get %s: %w", key, err)
	}
	return time.UnixMilli(ms), nil
}
