package repositories_test

import (
	"testing"
	"time"

	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
)

func TestBalanceKey(t *testing.T) {
	assert.Equal(t, portsrepo.Key("Balance:User:alice"), portsrepo.BalanceKey(domain.Identity("alice")))
}

func TestTTLPolicyExtend(t *testing.T) {
	policy := portsrepo.TTLPolicy{LedgerDuration: time.Second}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unset horizon is extended", func(t *testing.T) {
		got := policy.Extend(now, time.Time{}, 100, 100)
		assert.Equal(t, now.Add(100*time.Second), got)
	})

	t.Run("horizon above threshold is kept", func(t *testing.T) {
		current := now.Add(150 * time.Second)
		assert.Equal(t, current, policy.Extend(now, current, 100, 200))
	})

	t.Run("horizon below threshold is extended", func(t *testing.T) {
		current := now.Add(50 * time.Second)
		assert.Equal(t, now.Add(200*time.Second), policy.Extend(now, current, 100, 200))
	})

	t.Run("never shrinks", func(t *testing.T) {
		current := now.Add(90 * time.Second)
		assert.Equal(t, current, policy.Extend(now, current, 100, 10))
	})

	t.Run("zero ledger duration uses default", func(t *testing.T) {
		got := portsrepo.TTLPolicy{}.Extend(now, time.Time{}, 1, 2)
		assert.Equal(t, now.Add(2*portsrepo.DefaultLedgerDuration), got)
	})
}
