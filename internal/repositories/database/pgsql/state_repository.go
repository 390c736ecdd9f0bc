package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStateRepository stores the state of one ledger instance in the
// contract_state table, keyed by namespace.
type PgxStateRepository struct {
	BaseRepository
	namespace string
	policy    portsrepo.TTLPolicy
	now       func() time.Time
}

// newPgxStateRepository creates a state repository for namespace.
func newPgxStateRepository(pool *pgxpool.Pool, namespace string, policy portsrepo.TTLPolicy) *PgxStateRepository {
	return &PgxStateRepository{
		BaseRepository: BaseRepository{Pool: pool},
		namespace:      namespace,
		policy:         policy,
		now:            time.Now,
	}
}

// Ensure implementation matches interface
var _ portsrepo.StateRepositoryWithTx = (*PgxStateRepository)(nil)

// Get reads one committed entry.
func (r *PgxStateRepository) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	return getEntry(ctx, r.Pool, r.namespace, key)
}

// Update runs fn inside one database transaction. Updates to the same
// namespace are serialized with a transaction-scoped advisory lock.
func (r *PgxStateRepository) Update(ctx context.Context, fn func(tx portsrepo.StateTx) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := r.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, r.namespace); err != nil {
		return fmt.Errorf("failed to lock namespace %s: %w", r.namespace, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO contract_instances (namespace)
		VALUES ($1)
		ON CONFLICT (namespace) DO NOTHING;
	`, r.namespace)
	if err != nil {
		return fmt.Errorf("failed to ensure instance %s: %w", r.namespace, err)
	}

	if err = fn(&pgxStateTx{repo: r, tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// LiveUntil reads the retention horizon of the instance.
func (r *PgxStateRepository) LiveUntil(ctx context.Context) (time.Time, error) {
	return liveUntil(ctx, r.Pool, r.namespace)
}

type pgxStateTx struct {
	repo *PgxStateRepository
	tx   pgx.Tx
}

func (t *pgxStateTx) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	return getEntry(ctx, t.tx, t.repo.namespace, key)
}

func (t *pgxStateTx) Set(ctx context.Context, key portsrepo.Key, value []byte) error {
	query := `
		INSERT INTO contract_state (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := t.tx.Exec(ctx, query, t.repo.namespace, string(key), value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (t *pgxStateTx) ExtendTTL(ctx context.Context, readThreshold, extendTo uint32) error {
	current, err := liveUntil(ctx, t.tx, t.repo.namespace)
	if err != nil {
		return err
	}
	next := t.repo.policy.Extend(t.repo.now(), current, readThreshold, extendTo)
	if next.Equal(current) {
		return nil
	}
	query := `
		UPDATE contract_instances
		SET live_until = $2, updated_at = NOW()
		WHERE namespace = $1;
	`
	if _, err := t.tx.Exec(ctx, query, t.repo.namespace, next); err != nil {
		return fmt.Errorf("failed to extend ttl of %s: %w", t.repo.namespace, err)
	}
	return nil
}

// rowQuerier is satisfied by both the pool and a transaction.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getEntry(ctx context.Context, q rowQuerier, namespace string, key portsrepo.Key) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM contract_state
		WHERE namespace = $1 AND key = $2;
	`
	var value []byte
	err := q.QueryRow(ctx, query, namespace, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func liveUntil(ctx context.Context, q rowQuerier, namespace string) (time.Time, error) {
	var until *time.Time
	err := q.QueryRow(ctx, `SELECT live_until FROM contract_instances WHERE namespace = $1;`, namespace).Scan(&until)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to read live_until of %s: %w", namespace, err)
	}
	if until == nil {
		return time.Time{}, nil
	}
	return *until, nil
}
