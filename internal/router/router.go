package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradeflow/internal/auth"
	"tradeflow/internal/config"
	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
	"tradeflow/internal/logger"
	"tradeflow/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	File     *handler.FileHandler
	Document *handler.DocumentHandler
	Export   *handler.ExportHandler
	Rule     *handler.RuleHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, log *logger.Logger, validator auth.TokenValidator, h *Handlers) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(validator))
	v1.Use(middleware.TenantGuard())

	// Scan files
	files := v1.Group("/files")
	files.POST("/upload", h.File.Upload)
	files.GET("", h.File.List)
	files.GET("/:id", h.File.GetByID)
	files.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.File.Delete)

	// Documents
	docs := v1.Group("/documents")
	docs.POST("", h.Document.Create)
	docs.POST("/text", h.Document.CreateFromText)
	docs.POST("/batch", h.Document.CreateBatch)
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.GetByID)
	docs.PATCH("/:id", h.Document.UpdateFields)
	docs.GET("/:id/items", h.Document.ListItems)
	docs.PUT("/:id/items", h.Document.ReplaceItems)
	docs.POST("/:id/approve", h.Document.Approve)
	docs.POST("/:id/verify", h.Document.Verify)
	docs.GET("/:id/annotations", h.Document.TrainingAnnotations)
	docs.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.Document.Delete)

	// Reconciliation exports
	exports := v1.Group("/exports")
	exports.POST("", h.Export.Export)
	exports.POST("/preview", h.Export.Preview)

	// Substitution rules
	rules := v1.Group("/rules")
	rules.GET("", h.Rule.Get)
	rules.PUT("", middleware.RequireRole(domain.RoleAdmin), h.Rule.Replace)

	return r
}
