package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/bestcell/bestsystem_backend/cmd/docs"
	portssvc "github.com/bestcell/bestsystem_backend/internal/core/ports/services"
	"github.com/bestcell/bestsystem_backend/internal/middleware"
	"github.com/bestcell/bestsystem_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// loginLimiter may be nil to leave login unthrottled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {
	RegisterValidators()

	r.GET("/", getHome)
	r.GET("/health", getHealth)

	// every v1 route except login needs a session holding the operator lock
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Session))

	registerAuthRoutes(r, v1, services.Session, loginLimiter)
	registerSaleRoutes(v1, services.Sale)
	registerParcelRoutes(v1, services.Parcel)
	registerReportingRoutes(v1, services.Reporting, cfg.Location)

	setupSwaggerRoutes(r, cfg)
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
