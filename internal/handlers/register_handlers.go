package handlers

import (
	"github.com/SscSPs/microlend_ledger/cmd/docs"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/SscSPs/microlend_ledger/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	service *portssvc.ServiceContainer,
) {
	// Every v1 request must carry an actor
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	RegisterLoanRoutes(v1, service.Loan, service.Reporting)
	RegisterLedgerRoutes(v1, service.Ledger)
	RegisterCollectorRoutes(v1, service.Collector, service.Attendance, service.Payroll)
	RegisterOfficeRoutes(v1, service.Investor, service.Task, service.Asset, service.Audit)
	RegisterReportingRoutes(v1, service.Reporting)
	RegisterSnapshotRoutes(v1, service.Snapshot)
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
