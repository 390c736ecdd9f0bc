package models

// CurrencyInfo is the stored representation of the currency metadata.
// TotalSupply is kept as a base-10 string so 128-bit values survive JSON.
type CurrencyInfo struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	TotalSupply    string `json:"total_supply"`
	CommunityAdmin string `json:"community_admin"`
}
