package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/middleware"
)

// TTLConfig holds the retention constants applied after every mutation,
// expressed in ledgers.
type TTLConfig struct {
	ReadThreshold uint32
	ExtendTo      uint32
}

// DefaultTTLConfig returns the retention used when none is configured.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{ReadThreshold: 100000, ExtendTo: 100000}
}

// BaseService provides common functionality for the registry and the ledger.
type BaseService struct {
	state      portsrepo.StateStore
	authorizer portssvc.Authorizer
	ttl        TTLConfig
	// mu serializes calls against one ledger instance: writers take the
	// write lock, queries the read lock.
	mu         *sync.RWMutex
	strictInit bool
}

// ServiceOption is a functional option for configuring services.
type ServiceOption func(*BaseService)

// WithTTLConfig sets the retention constants.
func WithTTLConfig(ttl TTLConfig) ServiceOption {
	return func(s *BaseService) {
		s.ttl = ttl
	}
}

// WithInstanceLock shares one lock between services of the same instance.
func WithInstanceLock(mu *sync.RWMutex) ServiceOption {
	return func(s *BaseService) {
		if mu != nil {
			s.mu = mu
		}
	}
}

// WithStrictInitialization makes Initialize reject non-positive supplies,
// blank names or symbols, and the placeholder admin. Only the registry
// consults it.
func WithStrictInitialization() ServiceOption {
	return func(s *BaseService) {
		s.strictInit = true
	}
}

func newBaseService(state portsrepo.StateStore, authorizer portssvc.Authorizer, options ...ServiceOption) BaseService {
	b := BaseService{
		state:      state,
		authorizer: authorizer,
		ttl:        DefaultTTLConfig(),
		mu:         &sync.RWMutex{},
	}
	for _, option := range options {
		option(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a rejected call.
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// requireAuth asks the Authorization Gate for id. Any failure, including
// an infrastructure error, is reported as ErrUnauthorized.
func (s *BaseService) requireAuth(ctx context.Context, id domain.Identity) error {
	if s.authorizer == nil {
		return fmt.Errorf("%w: no authorizer configured", apperrors.ErrUnauthorized)
	}
	err := s.authorizer.RequireAuth(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrUnauthorized) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
}

// extendTTL applies the configured retention inside a unit.
func (s *BaseService) extendTTL(ctx context.Context, tx portsrepo.StateTx) error {
	if err := tx.ExtendTTL(ctx, s.ttl.ReadThreshold, s.ttl.ExtendTo); err != nil {
		return fmt.Errorf("failed to extend state ttl: %w", err)
	}
	return nil
}
