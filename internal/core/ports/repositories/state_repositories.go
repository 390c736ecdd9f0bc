package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/community_currency/internal/core/domain"
)

// Key addresses one entry in a ledger instance's persistent namespace.
type Key string

const (
	// KeyCurrencyInfo holds the CurrencyInfo singleton.
	KeyCurrencyInfo Key = "CURR_INFO"
	// KeyInitialized holds the initialized flag.
	KeyInitialized Key = "INIT"

	balanceKeyPrefix = "Balance:User:"
)

// BalanceKey returns the key under which the balance of id is stored.
func BalanceKey(id domain.Identity) Key {
	return Key(balanceKeyPrefix + string(id))
}

// StateReader defines read operations on the instance state.
type StateReader interface {
	// Get returns the stored value for key and whether it was present.
	Get(ctx context.Context, key Key) ([]byte, bool, error)
}

// StateWriter defines write operations on the instance state.
type StateWriter interface {
	// Set stores value under key.
	Set(ctx context.Context, key Key, value []byte) error

	// ExtendTTL extends the retention horizon of the instance to extendTo
	// ledgers if fewer than readThreshold ledgers remain.
	ExtendTTL(ctx context.Context, readThreshold, extendTo uint32) error
}

// StateTx is the view of the state available inside one transactional unit.
// Reads observe the writes made earlier in the same unit.
type StateTx interface {
	StateReader
	StateWriter
}

// StateStore is the Storage Adapter the ledger core depends on.
type StateStore interface {
	StateReader

	// Update runs fn inside one transactional unit. Writes made through tx
	// are committed only if fn returns nil; otherwise nothing is written.
	Update(ctx context.Context, fn func(tx StateTx) error) error

	// LiveUntil reports the current retention horizon of the instance. The
	// zero time means no horizon has been set yet.
	LiveUntil(ctx context.Context) (time.Time, error)
}

// TTLPolicy converts ledger counts into wall-clock retention.
type TTLPolicy struct {
	LedgerDuration time.Duration
}

// DefaultLedgerDuration approximates one ledger close.
const DefaultLedgerDuration = 5 * time.Second

// Extend returns the new horizon given the current one. It returns current
// unchanged if at least readThreshold ledgers remain.
func (p TTLPolicy) Extend(now, current time.Time, readThreshold, extendTo uint32) time.Time {
	unit := p.LedgerDuration
	if unit <= 0 {
		unit = DefaultLedgerDuration
	}
	remaining := current.Sub(now)
	if !current.IsZero() && remaining >= time.Duration(readThreshold)*unit {
		return current
	}
	extended := now.Add(time.Duration(extendTo) * unit)
	if extended.Before(current) {
		return current
	}
	return extended
}
