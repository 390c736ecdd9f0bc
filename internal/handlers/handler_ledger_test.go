package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	mockLedger *MockLedgerService
}

func (suite *LedgerHandlerTestSuite) SetupTest() {
	suite.mockLedger = new(MockLedgerService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Registry: new(MockRegistryService),
		Ledger:   suite.mockLedger,
	})
}

func (suite *LedgerHandlerTestSuite) TestTransfer_Success() {
	suite.mockLedger.On("Transfer", mock.Anything, domain.Identity("GADMIN"), domain.Identity("GUSER1"), amountEq(500)).
		Return(true, nil).Once()

	body := dto.TransferRequest{From: "GADMIN", To: "GUSER1", Amount: amountOf("500")}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, tokenFor("GADMIN"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Result)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransfer_AcceptsNumericAmount() {
	suite.mockLedger.On("Transfer", mock.Anything, domain.Identity("GADMIN"), domain.Identity("GUSER1"), amountEq(500)).
		Return(true, nil).Once()

	body := gin.H{"from": "GADMIN", "to": "GUSER1", "amount": 500}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, tokenFor("GADMIN"))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *LedgerHandlerTestSuite) TestTransfer_NegativeAmountReachesService() {
	suite.mockLedger.On("Transfer", mock.Anything, domain.Identity("GADMIN"), domain.Identity("GUSER1"), amountEq(-5)).
		Return(false, fmt.Errorf("transfer: %w", apperrors.ErrInvalidAmount)).Once()

	body := dto.TransferRequest{From: "GADMIN", To: "GUSER1", Amount: amountOf("-5")}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, tokenFor("GADMIN"))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(apperrors.KindInvalidAmount, resp.Code)
}

func (suite *LedgerHandlerTestSuite) TestTransfer_ErrorMapping() {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{apperrors.ErrUnauthorized, http.StatusForbidden, apperrors.KindUnauthorized},
		{apperrors.ErrInsufficientBalance, http.StatusUnprocessableEntity, apperrors.KindInsufficientBalance},
		{apperrors.NewAppError(http.StatusServiceUnavailable, "retries exhausted", errors.New("conflict")), http.StatusServiceUnavailable, apperrors.KindInternal},
		{errors.New("boom"), http.StatusInternalServerError, apperrors.KindInternal},
	}
	for _, tt := range tests {
		suite.Run(tt.code, func() {
			suite.mockLedger.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(false, tt.err).Once()

			body := dto.TransferRequest{From: "GADMIN", To: "GUSER1", Amount: amountOf("1")}
			w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, tokenFor("GADMIN"))

			suite.Equal(tt.status, w.Code)
			var resp dto.ErrorResponse
			suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			suite.Equal(tt.code, resp.Code)
		})
	}
}

func (suite *LedgerHandlerTestSuite) TestTransfer_InvalidBody() {
	tests := map[string]gin.H{
		"missing from":    {"to": "GUSER1", "amount": "1"},
		"missing amount":  {"from": "GADMIN", "to": "GUSER1"},
		"null amount":     {"from": "GADMIN", "to": "GUSER1", "amount": nil},
		"decimal amount":  {"from": "GADMIN", "to": "GUSER1", "amount": "0.5"},
		"decimal number":  {"from": "GADMIN", "to": "GUSER1", "amount": 0.5},
		"numeric garbage": {"from": "GADMIN", "to": "GUSER1", "amount": "5e"},
		"amount is bool":  {"from": "GADMIN", "to": "GUSER1", "amount": true},
	}
	for name, body := range tests {
		suite.Run(name, func() {
			w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, tokenFor("GADMIN"))
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockLedger.AssertNotCalled(suite.T(), "Transfer")
}

func (suite *LedgerHandlerTestSuite) TestTransfer_RequiresToken() {
	body := dto.TransferRequest{From: "GADMIN", To: "GUSER1", Amount: amountOf("1")}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/ledger/transfers", body, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "Transfer")
}

func (suite *LedgerHandlerTestSuite) TestGetBalance() {
	suite.mockLedger.On("GetBalance", mock.Anything, domain.Identity("GUSER1")).
		Return(decimal.NewFromInt(500), nil).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/ledger/balances/GUSER1", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.BalanceResponse{Identity: "GUSER1", Balance: "500"}, resp)
}

func (suite *LedgerHandlerTestSuite) TestGetBalance_ServiceError() {
	suite.mockLedger.On("GetBalance", mock.Anything, domain.Identity("GUSER1")).
		Return(decimal.Zero, errors.New("store down")).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/ledger/balances/GUSER1", nil, "")

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
