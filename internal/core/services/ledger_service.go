package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/platform/metrics"
	"github.com/shopspring/decimal"
)

// ledgerService implements the LedgerSvcFacade interface
type ledgerService struct {
	BaseService
}

// NewLedgerService creates the ledger on top of state.
func NewLedgerService(state portsrepo.StateStore, authorizer portssvc.Authorizer, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{BaseService: newBaseService(state, authorizer, options...)}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Transfer moves amount from one identity to another. A self-transfer is
// checked like any other and then leaves the balance untouched.
// There is no initialized check: before initialization every balance is
// zero, so any positive transfer fails with ErrInsufficientBalance.
func (s *ledgerService) Transfer(ctx context.Context, from, to domain.Identity, amount decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.state.Update(ctx, func(tx portsrepo.StateTx) error {
		if err := s.requireAuth(ctx, from); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return apperrors.ErrInvalidAmount
		}
		if err := domain.CheckAmount(amount); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
		}

		fromBalance, err := readBalance(ctx, tx, from)
		if err != nil {
			return err
		}
		if fromBalance.LessThan(amount) {
			return apperrors.ErrInsufficientBalance
		}
		if from == to {
			return s.extendTTL(ctx, tx)
		}
		toBalance, err := readBalance(ctx, tx, to)
		if err != nil {
			return err
		}

		if err := writeBalance(ctx, tx, from, fromBalance.Sub(amount)); err != nil {
			return err
		}
		if err := writeBalance(ctx, tx, to, toBalance.Add(amount)); err != nil {
			return err
		}
		return s.extendTTL(ctx, tx)
	})
	metrics.RecordOperation("transfer", err)
	if err != nil {
		if apperrors.Kind(err) == apperrors.KindInternal {
			s.LogError(ctx, err, "Failed to transfer",
				slog.String("from", string(from)),
				slog.String("to", string(to)))
		} else {
			s.LogWarn(ctx, "Transfer rejected",
				slog.String("from", string(from)),
				slog.String("to", string(to)),
				slog.String("amount", amount.String()),
				slog.String("reason", apperrors.Kind(err)))
		}
		return false, err
	}

	metrics.RecordTransfer(amount)
	s.LogInfo(ctx, "Transfer completed",
		slog.String("amount", amount.String()),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return true, nil
}

// GetBalance returns the balance of user; absent balances are zero.
func (s *ledgerService) GetBalance(ctx context.Context, user domain.Identity) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	balance, err := readBalance(ctx, s.state, user)
	metrics.RecordOperation("get_balance", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to read balance", slog.String("user", string(user)))
		return decimal.Zero, err
	}
	return balance, nil
}
