package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/SscSPs/community_currency/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

func readInitialized(ctx context.Context, r portsrepo.StateReader) (bool, error) {
	raw, ok, err := r.Get(ctx, portsrepo.KeyInitialized)
	if err != nil {
		return false, fmt.Errorf("failed to read initialized flag: %w", err)
	}
	if !ok {
		return false, nil
	}
	return mapping.DecodeBool(raw)
}

func readCurrencyInfo(ctx context.Context, r portsrepo.StateReader) (domain.CurrencyInfo, bool, error) {
	raw, ok, err := r.Get(ctx, portsrepo.KeyCurrencyInfo)
	if err != nil {
		return domain.CurrencyInfo{}, false, fmt.Errorf("failed to read currency info: %w", err)
	}
	if !ok {
		return domain.CurrencyInfo{}, false, nil
	}
	info, err := mapping.DecodeCurrencyInfo(raw)
	if err != nil {
		return domain.CurrencyInfo{}, false, err
	}
	info.Initialized = true
	return info, true, nil
}

// readBalance returns the balance of id; absent entries read as zero.
func readBalance(ctx context.Context, r portsrepo.StateReader, id domain.Identity) (decimal.Decimal, error) {
	raw, ok, err := r.Get(ctx, portsrepo.BalanceKey(id))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance of %s: %w", id, err)
	}
	if !ok {
		return decimal.Zero, nil
	}
	return mapping.DecodeAmount(raw)
}

func writeBalance(ctx context.Context, tx portsrepo.StateTx, id domain.Identity, amount decimal.Decimal) error {
	if err := tx.Set(ctx, portsrepo.BalanceKey(id), mapping.EncodeAmount(amount)); err != nil {
		return fmt.Errorf("failed to write balance of %s: %w", id, err)
	}
	return nil
}
