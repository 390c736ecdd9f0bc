package pgsql

import (
	portsrepo "github.com/SscSPs/community_currency/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the PostgreSQL-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool, namespace string, policy portsrepo.TTLPolicy) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StateRepo: newPgxStateRepository(dbPool, namespace, policy),
	}
}
