// Package sqlite provides a StateStore backed by a single SQLite file.
//
// It uses modernc.org/sqlite, a pure Go SQLite implementation, so no CGO is
// needed. The schema is managed through the embedded migrations/ directory.
// The store holds one connection, so transactional units are serialized.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/SscSPs/community_currency/internal/repositories/database/sqlite/migrations"
)

// Store keeps the state of one ledger instance in a SQLite database.
type Store struct {
	db        *sql.DB
	namespace string
	policy    portsrepo.TTLPolicy
	now       func() time.Time
}

// NewStore opens (creating if needed) the database at path and applies
// pending migrations.
func NewStore(path, namespace string, policy portsrepo.TTLPolicy) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
		db:        db,
		namespace: namespace,
		policy:    policy,
		now:       time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

var _ portsrepo.StateStore = (*Store)(nil)

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Get reads one committed entry.
func (s *Store) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	return getEntry(ctx, s.db, s.namespace, key)
}

// Update runs fn inside one SQL transaction.
func (s *Store) Update(ctx context.Context, fn func(tx portsrepo.StateTx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO contract_instances (namespace) VALUES (?) ON CONFLICT(namespace) DO NOTHING`, s.namespace)
	if err != nil {
		return fmt.Errorf("ensuring instance %s: %w", s.namespace, err)
	}

	if err = fn(&sqliteTx{store: s, tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// LiveUntil reads the retention horizon of the instance.
func (s *Store) LiveUntil(ctx context.Context) (time.Time, error) {
	return liveUntil(ctx, s.db, s.namespace)
}

type sqliteTx struct {
	store *Store
	tx    *sql.Tx
}

func (t *sqliteTx) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	return getEntry(ctx, t.tx, t.store.namespace, key)
}

func (t *sqliteTx) Set(ctx context.Context, key portsrepo.Key, value []byte) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO contract_state (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, t.store.namespace, string(key), value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func (t *sqliteTx) ExtendTTL(ctx context.Context, readThreshold, extendTo uint32) error {
	current, err := liveUntil(ctx, t.tx, t.store.namespace)
	if err != nil {
		return err
	}
	next := t.store.policy.Extend(t.store.now(), current, readThreshold, extendTo)
	if next.Equal(current) {
		return nil
	}
	_, err = t.tx.ExecContext(ctx, `
		UPDATE contract_instances
		SET live_until = ?, updated_at = CURRENT_TIMESTAMP
		WHERE namespace = ?
	`, next.UnixNano(), t.store.namespace)
	if err != nil {
		return fmt.Errorf("extending ttl of %s: %w", t.store.namespace, err)
	}
	return nil
}

func getEntry(ctx context.Context, q queryRower, namespace string, key portsrepo.Key) ([]byte, bool, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM contract_state WHERE namespace = ? AND key = ?`, namespace, string(key)).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

// live_until is stored as Unix nanoseconds.
func liveUntil(ctx context.Context, q queryRower, namespace string) (time.Time, error) {
	var until sql.NullInt64
	err := q.QueryRowContext(ctx, `SELECT live_until FROM contract_instances WHERE namespace = ?`, namespace).Scan(&until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("reading live_until of %s: %w", namespace, err)
	}
	if !until.Valid {
		return time.Time{}, nil
	}
	return time.Unix(0, until.Int64), nil
}
