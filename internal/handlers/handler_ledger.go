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

// ledgerHandler handles HTTP requests for balances and transfers.
type ledgerHandler struct {
	ledger portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ledger portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledger: ledger,
	}
}

// RegisterLedgerRoutes registers routes related to the ledger. Mutating
// routes run behind protect.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, protect ...gin.HandlerFunc) {
	h := newLedgerHandler(ledger)

	l := rg.Group("/ledger")
	{
		l.POST("/transfers", chain(protect, h.transfer)...)
		l.GET("/balances/:identity", h.getBalance)
	}
}

// transfer godoc
// @Summary Transfer units between identities
// @Description Moves amount from "from" to "to". The bearer token must belong to "from". A transfer to oneself succeeds without changing any balance.
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   request body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.ResultResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or non-positive amount"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Token does not belong to the sender"
// @Failure 422 {object} dto.ErrorResponse "Insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to transfer"
// @Security BearerAuth
// @Router /ledger/transfers [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: apperrors.KindValidation})
		return
	}

	logger = logger.With(slog.String("from", req.From), slog.String("to", req.To))

	result, err := h.ledger.Transfer(c.Request.Context(), domain.Identity(req.From), domain.Identity(req.To), *req.Amount)
	if err != nil {
		respondError(c, logger, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ResultResponse{Result: result})
}

// getBalance godoc
// @Summary Get the balance of an identity
// @Description Returns the balance held by identity; identities that never held units report 0.
// @Tags ledger
// @Produce  json
// @Param   identity path string true "Identity"
// @Success 200 {object} dto.BalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid identity"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve balance"
// @Router /ledger/balances/{identity} [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	identity := c.Param("identity")
	if !dto.IsValidIdentity(identity) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid identity", Code: apperrors.KindValidation})
		return
	}

	balance, err := h.ledger.GetBalance(c.Request.Context(), domain.Identity(identity))
	if err != nil {
		respondError(c, logger.With(slog.String("identity", identity)), err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(domain.Identity(identity), balance))
}
