package services

import (
	"context"

	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Authorizer is the Authorization Gate. RequireAuth succeeds only if the
// current call is authorized on behalf of id and fails closed otherwise.
type Authorizer interface {
	RequireAuth(ctx context.Context, id domain.Identity) error
}

// CurrencyReaderSvc defines read operations on the currency metadata.
type CurrencyReaderSvc interface {
	// GetCurrencyInfo returns the stored metadata, or the not-initialized
	// sentinel when the currency has not been initialized.
	GetCurrencyInfo(ctx context.Context) (domain.CurrencyInfo, error)
}

// CurrencyWriterSvc defines the one-time initialization of the currency.
type CurrencyWriterSvc interface {
	// Initialize creates the currency and credits admin with initialSupply.
	Initialize(ctx context.Context, admin domain.Identity, name, symbol string, initialSupply decimal.Decimal) (bool, error)
}

// CurrencyRegistrySvc combines the currency registry operations.
type CurrencyRegistrySvc interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// BalanceReaderSvc defines balance queries.
type BalanceReaderSvc interface {
	// GetBalance returns the balance of user, zero when absent.
	GetBalance(ctx context.Context, user domain.Identity) (decimal.Decimal, error)
}

// TransferSvc defines the transfer state transition.
type TransferSvc interface {
	// Transfer moves amount from from to to.
	Transfer(ctx context.Context, from, to domain.Identity, amount decimal.Decimal) (bool, error)
}

// LedgerSvcFacade combines all ledger operations.
type LedgerSvcFacade interface {
	BalanceReaderSvc
	TransferSvc
}
