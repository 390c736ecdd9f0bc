package handlers_test

import (
	"encoding/json"
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

type CurrencyHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockRegistry *MockRegistryService
	mockLedger   *MockLedgerService
}

func (suite *CurrencyHandlerTestSuite) SetupTest() {
	suite.mockRegistry = new(MockRegistryService)
	suite.mockLedger = new(MockLedgerService)
	suite.router = newTestRouter(&portssvc.ServiceContainer{
		Registry: suite.mockRegistry,
		Ledger:   suite.mockLedger,
	})
}

func (suite *CurrencyHandlerTestSuite) initializeBody() dto.InitializeCurrencyRequest {
	return dto.InitializeCurrencyRequest{
		Admin:         "GADMIN",
		Name:          "Community Coin",
		Symbol:        "COMM",
		InitialSupply: amountOf("1000000"),
	}
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_Success() {
	suite.mockRegistry.On("Initialize", mock.Anything, domain.Identity("GADMIN"), "Community Coin", "COMM", amountEq(1000000)).
		Return(true, nil).Once()

	w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", suite.initializeBody(), tokenFor("GADMIN"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ResultResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Result)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_AcceptsNumericSupply() {
	suite.mockRegistry.On("Initialize", mock.Anything, domain.Identity("GADMIN"), "Community Coin", "COMM", amountEq(1000000)).
		Return(true, nil).Once()

	body := gin.H{"admin": "GADMIN", "name": "Community Coin", "symbol": "COMM", "initialSupply": 1000000}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", body, tokenFor("GADMIN"))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_MissingToken() {
	w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", suite.initializeBody(), "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	var resp dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(apperrors.KindUnauthenticated, resp.Code)
	suite.mockRegistry.AssertNotCalled(suite.T(), "Initialize")
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_InvalidToken() {
	w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", suite.initializeBody(), "garbage")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockRegistry.AssertNotCalled(suite.T(), "Initialize")
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_ErrorMapping() {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("wrapped: %w", apperrors.ErrAlreadyInitialized), http.StatusConflict, apperrors.KindAlreadyInitialized},
		{fmt.Errorf("wrapped: %w", apperrors.ErrUnauthorized), http.StatusForbidden, apperrors.KindUnauthorized},
		{fmt.Errorf("%w: supply out of range", apperrors.ErrValidation), http.StatusBadRequest, apperrors.KindValidation},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError, apperrors.KindInternal},
	}
	for _, tt := range tests {
		suite.Run(tt.code, func() {
			suite.mockRegistry.On("Initialize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(false, tt.err).Once()

			w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", suite.initializeBody(), tokenFor("GADMIN"))

			suite.Equal(tt.status, w.Code)
			var resp dto.ErrorResponse
			suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
			suite.Equal(tt.code, resp.Code)
			suite.NotContains(resp.Error, "disk on fire")
		})
	}
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_InvalidBody() {
	tests := map[string]gin.H{
		"missing admin":       {"name": "C", "symbol": "C", "initialSupply": "1"},
		"missing supply":      {"admin": "GADMIN"},
		"fractional supply":   {"admin": "GADMIN", "initialSupply": "1.5"},
		"non numeric supply":  {"admin": "GADMIN", "initialSupply": "lots"},
		"supply out of range": {"admin": "GADMIN", "initialSupply": "170141183460469231731687303715884105728"},
		"numeric above range": {"admin": "GADMIN", "initialSupply": json.Number("170141183460469231731687303715884105728")},
	}
	for name, body := range tests {
		suite.Run(name, func() {
			w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", body, tokenFor("GADMIN"))
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockRegistry.AssertNotCalled(suite.T(), "Initialize")
}

func (suite *CurrencyHandlerTestSuite) TestInitialize_EmptyNameAndSymbolPassThrough() {
	suite.mockRegistry.On("Initialize", mock.Anything, domain.Identity("GADMIN"), "", "", amountEq(0)).
		Return(true, nil).Once()

	body := dto.InitializeCurrencyRequest{Admin: "GADMIN", InitialSupply: amountOf("0")}
	w := doJSON(suite.router, http.MethodPost, "/api/v1/currency/initialize", body, tokenFor("GADMIN"))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *CurrencyHandlerTestSuite) TestGetCurrencyInfo() {
	suite.mockRegistry.On("GetCurrencyInfo", mock.Anything).Return(domain.CurrencyInfo{
		Name:        "Community Coin",
		Symbol:      "COMM",
		TotalSupply: decimal.NewFromInt(1000000),
		Admin:       "GADMIN",
		Initialized: true,
	}, nil).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/currency", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrencyInfoResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(dto.CurrencyInfoResponse{
		Name:        "Community Coin",
		Symbol:      "COMM",
		TotalSupply: "1000000",
		Admin:       "GADMIN",
		Initialized: true,
	}, resp)
}

func (suite *CurrencyHandlerTestSuite) TestGetCurrencyInfo_NotInitialized() {
	suite.mockRegistry.On("GetCurrencyInfo", mock.Anything).Return(domain.NotInitializedCurrency(), nil).Once()

	w := doJSON(suite.router, http.MethodGet, "/api/v1/currency", nil, "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrencyInfoResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Not_Initialized", resp.Name)
	suite.Equal("N/A", resp.Symbol)
	suite.Equal("0", resp.TotalSupply)
	suite.Equal(string(domain.PlaceholderAdmin), resp.Admin)
	suite.False(resp.Initialized)
}

func (suite *CurrencyHandlerTestSuite) TestHealthAndMetrics() {
	w := doJSON(suite.router, http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = doJSON(suite.router, http.MethodGet, "/metrics", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "community_currency_http_requests_total")
}

func TestCurrencyHandler(t *testing.T) {
	suite.Run(t, new(CurrencyHandlerTestSuite))
}
