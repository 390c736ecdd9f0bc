package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/SscSPs/community_currency/internal/auth"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/handlers"
	"github.com/SscSPs/community_currency/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "community-currency-test"
)

// --- Mock CurrencyRegistryService ---
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) GetCurrencyInfo(ctx context.Context) (domain.CurrencyInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CurrencyInfo), args.Error(1)
}

func (m *MockRegistryService) Initialize(ctx context.Context, admin domain.Identity, name, symbol string, initialSupply decimal.Decimal) (bool, error) {
	args := m.Called(ctx, admin, name, symbol, initialSupply)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CurrencyRegistrySvc = (*MockRegistryService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, user domain.Identity) (decimal.Decimal, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, from, to domain.Identity, amount decimal.Decimal) (bool, error) {
	args := m.Called(ctx, from, to, amount)
	return args.Bool(0), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// newTestRouter builds the full route table in test mode.
func newTestRouter(services *portssvc.ServiceContainer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := &config.Config{IsProduction: true}
	if err := handlers.RegisterRoutes(r, cfg, services, auth.NewTokenVerifier(testSecret, testIssuer), nil); err != nil {
		panic(err)
	}
	return r
}

// tokenFor mints a bearer token for id.
func tokenFor(id domain.Identity) string {
	token, err := auth.NewTokenIssuer(testSecret, testIssuer, time.Hour).Issue(id)
	if err != nil {
		panic(err)
	}
	return token
}

// doJSON serves one request and returns the recorder.
func doJSON(r http.Handler, method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// amountOf parses s for use in request bodies.
func amountOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func amountEq(want int64) any {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(want))
	})
}
