package handlers

import (
	"log/slog"

	"github.com/SscSPs/community_currency/internal/apperrors"
	"github.com/SscSPs/community_currency/internal/dto"
	"github.com/gin-gonic/gin"
)

// errorMessages are the client-facing messages per error kind.
var errorMessages = map[string]string{
	apperrors.KindAlreadyInitialized:  "Currency already initialized",
	apperrors.KindUnauthorized:        "Caller is not authorized for this identity",
	apperrors.KindInvalidAmount:       "Amount must be positive",
	apperrors.KindInsufficientBalance: "Insufficient balance",
}

// respondError maps a service error to its status and JSON body.
func respondError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	kind := apperrors.Kind(err)
	status := apperrors.HTTPStatus(err)

	msg, ok := errorMessages[kind]
	switch {
	case kind == apperrors.KindValidation:
		msg = err.Error()
	case !ok:
		msg = internalMsg
	}

	if status >= 500 {
		logger.Error(internalMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", kind), slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{Error: msg, Code: kind})
}

// chain returns a new handler slice ending in h.
func chain(middlewares []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(middlewares)+1)
	out = append(out, middlewares...)
	return append(out, h)
}
