// Package api wires the HTTP surface: middleware chain, route groups and
// controllers.
package api

import (
	"github.com/gin-gonic/gin"

	"takeout/api/health"
	"takeout/api/middleware"
	"takeout/api/order"
	"takeout/api/report"
	"takeout/config"
)

// Router Route configuration
type Router struct {
	engine              *gin.Engine
	config              *config.Config
	healthController    *health.Controller
	userOrderController *order.UserController
	adminController     *order.AdminController
	reportController    *report.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	userOrderController *order.UserController,
	adminController *order.AdminController,
	reportController *report.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:              engine,
		config:              cfg,
		healthController:    healthController,
		userOrderController: userOrderController,
		adminController:     adminController,
		reportController:    reportController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.userOrderController.RegisterRoutes(apiGroup)
		r.adminController.RegisterRoutes(apiGroup)
		r.reportController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
