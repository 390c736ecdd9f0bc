package middleware

import (
	"github.com/SscSPs/community_currency/internal/auth"
	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// GetPrincipalFromContext retrieves the authenticated principal from the
// request context.
func GetPrincipalFromContext(c *gin.Context) (domain.Identity, bool) {
	return auth.PrincipalFromContext(c.Request.Context())
}
