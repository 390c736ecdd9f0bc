package dto

import (
	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest defines the data needed to move units between identities.
// Amount accepts a JSON string or number.
type TransferRequest struct {
	From   string           `json:"from" binding:"required,identity"`
	To     string           `json:"to" binding:"required,identity"`
	Amount *decimal.Decimal `json:"amount" binding:"required,int128" swaggertype:"string" example:"500"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	Identity string `json:"identity"`
	Balance  string `json:"balance"`
}

// ToBalanceResponse builds a BalanceResponse.
func ToBalanceResponse(id domain.Identity, balance decimal.Decimal) BalanceResponse {
	return BalanceResponse{Identity: string(id), Balance: balance.String()}
}

// ResultResponse wraps the boolean result of a state transition.
type ResultResponse struct {
	Result bool `json:"result"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
