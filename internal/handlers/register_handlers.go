package handlers

import (
	"net/http"

	"github.com/SscSPs/community_currency/cmd/docs"
	"github.com/SscSPs/community_currency/internal/auth"
	portssvc "github.com/SscSPs/community_currency/internal/core/ports/services"
	"github.com/SscSPs/community_currency/internal/dto"
	"github.com/SscSPs/community_currency/internal/middleware"
	"github.com/SscSPs/community_currency/internal/platform/config"
	"github.com/SscSPs/community_currency/internal/platform/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	verifier *auth.TokenVerifier,
	rateLimiter *limiter.Limiter,
) error {
	if err := dto.RegisterBindingValidators(); err != nil {
		return err
	}

	r.Use(middleware.Metrics())
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(corsCfg))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	setupAPIV1Routes(r, services, verifier, rateLimiter)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group. Reads are public; state
// transitions require a bearer token and are rate limited.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	verifier *auth.TokenVerifier,
	rateLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")
	protect := []gin.HandlerFunc{
		middleware.RateLimit(rateLimiter),
		middleware.AuthMiddleware(verifier),
	}

	RegisterCurrencyRoutes(v1, services.Registry, protect...)
	RegisterLedgerRoutes(v1, services.Ledger, protect...)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
