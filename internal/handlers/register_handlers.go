package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/jewel_backoffice_app/cmd/docs"
	"github.com/SscSPs/jewel_backoffice_app/internal/core/domain"
	portssvc "github.com/SscSPs/jewel_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/jewel_backoffice_app/internal/middleware"
	"github.com/SscSPs/jewel_backoffice_app/internal/platform/config"
	"github.com/SscSPs/jewel_backoffice_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// rateLimiter may be nil to disable rate limiting.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	ensureValidators()

	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIRoutes(r, cfg, services, posthogClient, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	rateLimiter *limiter.Limiter,
) {
	var chain []gin.HandlerFunc
	if rateLimiter != nil {
		chain = append(chain, middleware.RateLimit(rateLimiter))
	}
	if cfg.RequireAuth {
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}
	chain = append(chain, middleware.PosthogMiddleware(posthogClient))
	api := r.Group("/api", chain...)

	for _, metal := range domain.Metals() {
		metalGroup := api.Group("/" + metal.Slug())
		registerMetalTransactionRoutes(metalGroup, metal, services.MetalTransaction, posthogClient, cfg.BusinessLocation)
		registerReportingRoutes(metalGroup, metal, services.Reporting, cfg.BusinessLocation)
	}
	registerLedgerRoutes(api, services.Ledger, cfg.BusinessLocation)
	registerCustomerRoutes(api, services.Customer)
	registerMarketRateRoutes(api, services.MarketRates)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
