package router

import (
	"github.com/gin-gonic/gin"

	"refinery/internal/config"
	"refinery/internal/handler"
	"refinery/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	refinementH *handler.RefinementHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	refinements := v1.Group("/refinements")
	refinements.POST("", refinementH.Create)
	refinements.GET("", refinementH.List)
	refinements.GET("/export", refinementH.Export)
	refinements.GET("/:id", refinementH.GetByID)

	return r
}
