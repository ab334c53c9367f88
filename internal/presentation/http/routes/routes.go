package routes

import (
	"time"

	"github.com/dkimathi/invoicer-api/internal/config"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/handler"
	"github.com/dkimathi/invoicer-api/internal/presentation/http/middleware"
	"github.com/dkimathi/invoicer-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Composer *handler.ComposerHandler
	Invoice  *handler.InvoiceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

// rateLimiterConfig derives limiter settings from config. Zero or missing
// values fall back to the limiter defaults instead of producing an unbounded
// rate.
func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	out := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		out.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		out.BurstSize = cfg.Requests
	}
	out.CleanupInterval = 5 * time.Minute
	out.EntryTTL = 10 * time.Minute
	return out
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/magic-link", h.Auth.RequestMagicLink)
		auth.POST("/verify", h.Auth.Verify)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Session info
	protected.GET("/auth/session", h.Auth.GetSession)

	// Invoice composer (the active draft)
	registerComposerRoutes(protected, h)

	// Invoice history
	registerInvoiceRoutes(protected, h)
}

func registerComposerRoutes(protected *gin.RouterGroup, h *Handlers) {
	compose := protected.Group("/compose")
	{
		compose.GET("", h.Composer.GetDraft)
		compose.PUT("/client", h.Composer.SetClient)
		compose.PUT("/sender", h.Composer.SetSender)
		compose.POST("/items", h.Composer.AddItem)
		compose.PUT("/items/:index", h.Composer.UpdateItem)
		compose.DELETE("/items/:index", h.Composer.RemoveItem)
		compose.POST("/submit", h.Composer.Submit)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/export", h.Invoice.Export)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/document", h.Invoice.GetDocument)
		invoices.GET("/:id/pdf", h.Invoice.GetPDF)
	}
}
