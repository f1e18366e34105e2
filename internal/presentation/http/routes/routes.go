package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/joshuadev/bigasan-pos/internal/config"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/handler"
	"github.com/joshuadev/bigasan-pos/internal/presentation/http/middleware"
	"github.com/joshuadev/bigasan-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Sales     *handler.SalesHandler
	Customer  *handler.CustomerHandler
	Supplier  *handler.SupplierHandler
	Credit    *handler.CreditHandler
	Settings  *handler.SettingsHandler
	Dashboard *handler.DashboardHandler
	Backup    *handler.BackupHandler
	Sync      *handler.SyncHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Log        *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
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

		rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleAuth)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Owner credentials
	protected.PUT("/auth/credentials", h.Auth.ChangeCredentials)

	// Settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", h.Settings.UpdateSettings)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.GetOverview)
		dashboard.GET("/sales-summary", h.Dashboard.SalesSummary)
		dashboard.GET("/top-products", h.Dashboard.TopProducts)
	}

	// Products
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}

	// Sales. Checkout replays on a repeated Idempotency-Key so a retried
	// request cannot record the sale twice.
	idempotency := middleware.Idempotency(middleware.NewIdempotencyCache())
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sales.List)
		sales.POST("", idempotency, h.Sales.Checkout)
		sales.GET("/today", h.Sales.Today)
		sales.GET("/range", h.Sales.Range)
		sales.GET("/:id", h.Sales.Get)
	}

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
		customers.GET("/:id/outstanding", h.Customer.Outstanding)
	}

	// Suppliers and restocks
	suppliers := protected.Group("/suppliers")
	{
		suppliers.GET("", h.Supplier.List)
		suppliers.POST("", h.Supplier.Create)
		suppliers.GET("/:id", h.Supplier.Get)
		suppliers.PUT("/:id", h.Supplier.Update)
		suppliers.DELETE("/:id", h.Supplier.Delete)
	}
	restocks := protected.Group("/restocks")
	{
		restocks.GET("", h.Supplier.ListRestocks)
		restocks.POST("", h.Supplier.CreateRestock)
	}

	// Credit ledger
	credits := protected.Group("/credits")
	{
		credits.GET("", h.Credit.List)
		credits.GET("/outstanding", h.Credit.Outstanding)
		credits.POST("/refresh", h.Credit.Refresh)
		credits.GET("/:id", h.Credit.Get)
		credits.POST("/:id/payments", h.Credit.AddPayment)
	}

	// Backup
	backup := protected.Group("/backup")
	{
		backup.GET("/export", h.Backup.Export)
		backup.POST("/import", h.Backup.Import)
		backup.POST("/clear", h.Backup.Clear)
	}

	// Cloud sync
	syncGroup := protected.Group("/sync")
	{
		syncGroup.GET("/status", h.Sync.Status)
		syncGroup.POST("/push", h.Sync.PushAll)
	}

	// Printer
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
