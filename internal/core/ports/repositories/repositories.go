package repositories

// RepositoryProvider holds the repositories needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	StateRepo StateStore
}
