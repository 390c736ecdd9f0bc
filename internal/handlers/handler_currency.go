package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/core/domain"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/dto"
	"github.com/SscSPs/community_currency/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to the currency registry.
type currencyHandler struct {
	registry portssvc.CurrencyRegistrySvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(registry portssvc.CurrencyRegistrySvc) *currencyHandler {
	return &currencyHandler{
		registry: registry,
	}
}

// RegisterCurrencyRoutes registers routes related to the currency. Mutating
// routes run behind protect.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, registry portssvc.CurrencyRegistrySvc, protect ...gin.HandlerFunc) {
	h := newCurrencyHandler(registry)

	currency := rg.Group("/currency")
	{
		currency.GET("", h.getCurrencyInfo)
		currency.POST("/initialize", chain(protect, h.initialize)...)
	}
}

// initialize godoc
// @Summary Initialize the community currency
// @Description One-time setup: records name, symbol and supply, and credits the whole supply to the admin. The bearer token must belong to the admin.
// @Tags currency
// @Accept  json
// @Produce  json
// @Param   request body dto.InitializeCurrencyRequest true "Currency details"
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Token does not belong to the admin"
// @Failure 409 {object} dto.ErrorResponse "Currency already initialized"
// @Failure 500 {object} dto.ErrorResponse "Failed to initialize currency"
// @Security BearerAuth
// @Router /currency/initialize [post]
func (h *currencyHandler) initialize(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.InitializeCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Initialize", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: apperrors.KindValidation})
		return
	}

	logger = logger.With(slog.String("admin", req.Admin), slog.String("symbol", req.Symbol))
	logger.Info("Received request to initialize currency")

	result, err := h.registry.Initialize(c.Request.Context(), domain.Identity(req.Admin), req.Name, req.Symbol, *req.InitialSupply)
	if err != nil {
		respondError(c, logger, err, "Failed to initialize currency")
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Result: result})
}

// getCurrencyInfo godoc
// @Summary Get currency metadata
// @Description Returns name, symbol, total supply and admin. Before initialization a placeholder with name "Not_Initialized" is returned.
// @Tags currency
// @Produce  json
// @Success 200 {object} dto.CurrencyInfoResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve currency"
// @Router /currency [get]
func (h *currencyHandler) getCurrencyInfo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	info, err := h.registry.GetCurrencyInfo(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve currency")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyInfoResponse(info))
}
