package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/platform/metrics"
	"github.com/SscSPs/community_currency/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// registryService implements the CurrencyRegistrySvc interface
type registryService struct {
	BaseService
}

// NewRegistryService creates the currency registry on top of state.
func NewRegistryService(state portsrepo.StateStore, authorizer portssvc.Authorizer, options ...ServiceOption) portssvc.CurrencyRegistrySvc {
	return &registryService{BaseService: newBaseService(state, authorizer, options...)}
}

var _ portssvc.CurrencyRegistrySvc = (*registryService)(nil)

// Initialize creates the currency once. The initialized flag is checked
// before authorization, so a second call fails with ErrAlreadyInitialized
// whoever makes it.
func (s *registryService) Initialize(ctx context.Context, admin domain.Identity, name, symbol string, initialSupply decimal.Decimal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.state.Update(ctx, func(tx portsrepo.StateTx) error {
		initialized, err := readInitialized(ctx, tx)
		if err != nil {
			return err
		}
		if initialized {
			return apperrors.ErrAlreadyInitialized
		}

		if err := s.requireAuth(ctx, admin); err != nil {
			return err
		}

		if err := domain.CheckAmount(initialSupply); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		if s.strictInit {
			if err := validateStrict(admin, name, symbol, initialSupply); err != nil {
				return err
			}
		}

		currency := domain.CurrencyInfo{
			Name:        name,
			Symbol:      symbol,
			TotalSupply: initialSupply,
			Admin:       admin,
		}
		raw, err := mapping.EncodeCurrencyInfo(currency)
		if err != nil {
			return err
		}
		if err := tx.Set(ctx, portsrepo.KeyCurrencyInfo, raw); err != nil {
			return fmt.Errorf("failed to write currency info: %w", err)
		}
		if err := writeBalance(ctx, tx, admin, initialSupply); err != nil {
			return err
		}
		if err := tx.Set(ctx, portsrepo.KeyInitialized, mapping.EncodeBool(true)); err != nil {
			return fmt.Errorf("failed to write initialized flag: %w", err)
		}
		return s.extendTTL(ctx, tx)
	})
	metrics.RecordOperation("initialize", err)
	if err != nil {
		switch apperrors.Kind(err) {
		case apperrors.KindInternal:
			s.LogError(ctx, err, "Failed to initialize currency", slog.String("admin", string(admin)))
		default:
			s.LogWarn(ctx, "Currency initialization rejected",
				slog.String("admin", string(admin)),
				slog.String("reason", apperrors.Kind(err)))
		}
		return false, err
	}

	s.LogInfo(ctx, "Community currency initialized",
		slog.String("symbol", symbol),
		slog.String("initial_supply", initialSupply.String()),
		slog.String("admin", string(admin)))
	return true, nil
}

// GetCurrencyInfo returns the stored metadata or the not-initialized sentinel.
func (s *registryService) GetCurrencyInfo(ctx context.Context) (domain.CurrencyInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok, err := readCurrencyInfo(ctx, s.state)
	metrics.RecordOperation("get_currency_info", err)
	if err != nil {
		s.LogError(ctx, err, "Failed to read currency info")
		return domain.CurrencyInfo{}, err
	}
	if !ok {
		s.LogDebug(ctx, "Currency not initialized, returning placeholder")
		return domain.NotInitializedCurrency(), nil
	}
	return info, nil
}

func validateStrict(admin domain.Identity, name, symbol string, initialSupply decimal.Decimal) error {
	switch {
	case !initialSupply.IsPositive():
		return fmt.Errorf("%w: initial supply must be positive", apperrors.ErrValidation)
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	case strings.TrimSpace(symbol) == "":
		return fmt.Errorf("%w: symbol must not be blank", apperrors.ErrValidation)
	case admin == domain.PlaceholderAdmin:
		return fmt.Errorf("%w: admin must not be the placeholder identity", apperrors.ErrValidation)
	}
	return nil
}
