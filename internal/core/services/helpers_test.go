package services_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/SscSPs/community_currency/internal/repositories/state/memory"
	"github.com/SscSPs/community_currency/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Fake Authorizer ---

// fakeAuthorizer authorizes exactly the identities it has been told to.
type fakeAuthorizer struct {
	mu         sync.Mutex
	authorized map[domain.Identity]bool
	calls      []domain.Identity
}

func newFakeAuthorizer(ids ...domain.Identity) *fakeAuthorizer {
	a := &fakeAuthorizer{authorized: make(map[domain.Identity]bool)}
	for _, id := range ids {
		a.authorized[id] = true
	}
	return a
}

func (a *fakeAuthorizer) Allow(id domain.Identity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.authorized[id] = true
}

func (a *fakeAuthorizer) RequireAuth(_ context.Context, id domain.Identity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, id)
	if a.authorized[id] {
		return nil
	}
	return apperrors.ErrUnauthorized
}

// --- Mock StateStore ---

type MockStateStore struct {
	mock.Mock
}

func (m *MockStateStore) Get(ctx context.Context, key portsrepo.Key) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockStateStore) Update(ctx context.Context, fn func(tx portsrepo.StateTx) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

func (m *MockStateStore) LiveUntil(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

var _ portsrepo.StateStore = (*MockStateStore)(nil)

// sumBalances adds every balance entry committed to store.
func sumBalances(store *memory.Store) decimal.Decimal {
	total := decimal.Zero
	for k, v := range store.Entries() {
		if !strings.HasPrefix(string(k), "Balance:User:") {
			continue
		}
		d, err := mapping.DecodeAmount(v)
		if err != nil {
			panic(err)
		}
		total = total.Add(d)
	}
	return total
}
