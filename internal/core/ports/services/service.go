package services

// ServiceContainer holds instances of all the application services.
// Handlers receive it at route registration.
type ServiceContainer struct {
	Registry CurrencyRegistrySvc
	Ledger   LedgerSvcFacade
}
