package services

import (
	"sync"

	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/platform/config"
)

// NewServiceContainer creates the services of one ledger instance. The
// registry and the ledger share the instance lock.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, authorizer portssvc.Authorizer) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithInstanceLock(&sync.RWMutex{}),
		WithTTLConfig(TTLConfig{
			ReadThreshold: cfg.StateTTLThreshold,
			ExtendTo:      cfg.StateTTLExtendTo,
		}),
	}
	if cfg.StrictInitialize {
		options = append(options, WithStrictInitialization())
	}

	return &portssvc.ServiceContainer{
		Registry: NewRegistryService(repos.StateRepo, authorizer, options...),
		Ledger:   NewLedgerService(repos.StateRepo, authorizer, options...),
	}
}
