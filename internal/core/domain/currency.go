package domain

import "github.com/shopspring/decimal"

// Identity is an opaque principal reference. Balances are keyed by it and
// authorization is checked against it.
type Identity string

// PlaceholderAdmin is the admin reported by NotInitializedCurrency. It is an
// opaque constant and carries no meaning beyond "no admin yet".
const PlaceholderAdmin Identity = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"

// CurrencyInfo holds the metadata of the community currency.
type CurrencyInfo struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	TotalSupply decimal.Decimal `json:"totalSupply"`
	Admin       Identity        `json:"admin"`
	// Initialized is true only for metadata read back from storage.
	Initialized bool `json:"initialized"`
}

// NotInitializedCurrency is returned by currency queries before the currency
// has been initialized.
func NotInitializedCurrency() CurrencyInfo {
	return CurrencyInfo{
		Name:        "Not_Initialized",
		Symbol:      "N/A",
		TotalSupply: decimal.Zero,
		Admin:       PlaceholderAdmin,
	}
}
