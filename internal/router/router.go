package router

import (
	"github.com/gin-gonic/gin"

	"clindex/internal/domain"
	"clindex/internal/handler"
	"clindex/internal/middleware"
	"clindex/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	fileH *handler.FileHandler,
	docH *handler.DocumentHandler,
	reportH *handler.ReportHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// User management
	users := protected.Group("/users")
	users.GET("/me", userH.GetMe)
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)
	users.GET("", middleware.RequireRole(domain.RoleAdmin), userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Update)
	users.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), userH.Delete)

	// File routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("/:id", fileH.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), fileH.Delete)

	// Document routes
	docs := protected.Group("/documents")
	docs.POST("", docH.Create)
	docs.GET("", docH.List)
	docs.GET("/by-file/:fileId", docH.GetByFileID)
	docs.GET("/:id", docH.GetByID)
	docs.POST("/:id/retry", docH.Retry)
	docs.DELETE("/:id", docH.Delete)
	docs.GET("/:id/summary", docH.GetSummary)
	docs.GET("/:id/chunks", docH.ListChunks)
	docs.GET("/:id/images", docH.ListImages)
	docs.GET("/:id/images/:imageId/url", docH.GetImageURL)
	docs.GET("/:id/tags", docH.ListTags)
	docs.POST("/:id/tags", docH.AddTags)
	docs.DELETE("/:id/tags/:key", docH.DeleteTag)
	docs.GET("/:id/audit", docH.ListAudit)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/master", reportH.MasterReport)
	reports.GET("/index", reportH.DocumentIndex)
	reports.GET("/export/csv", reportH.ExportCSV)
	reports.GET("/export/xlsx", reportH.ExportXLSX)

	// Stats
	protected.GET("/stats", statsH.GetOverview)

	return r
}
