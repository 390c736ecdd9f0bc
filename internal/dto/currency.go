package dto

import (
	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InitializeCurrencyRequest defines the data needed to initialize the currency.
// InitialSupply accepts a JSON string or number.
type InitializeCurrencyRequest struct {
	Admin         string           `json:"admin" binding:"required,identity"`
	Name          string           `json:"name"`
	Symbol        string           `json:"symbol"`
	InitialSupply *decimal.Decimal `json:"initialSupply" binding:"required,int128" swaggertype:"string" example:"1000000"`
}

// CurrencyInfoResponse defines the data returned for the currency.
type CurrencyInfoResponse struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	TotalSupply string `json:"totalSupply"`
	Admin       string `json:"admin"`
	Initialized bool   `json:"initialized"`
}

// ToCurrencyInfoResponse converts a domain.CurrencyInfo to its response DTO.
func ToCurrencyInfoResponse(info domain.CurrencyInfo) CurrencyInfoResponse {
	return CurrencyInfoResponse{
		Name:        info.Name,
		Symbol:      info.Symbol,
		TotalSupply: info.TotalSupply.String(),
		Admin:       string(info.Admin),
		Initialized: info.Initialized,
	}
}
