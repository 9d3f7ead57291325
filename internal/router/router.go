package router

import (
	"time"

	"screenstock/internal/config"
	"screenstock/internal/handler"
	"screenstock/internal/middleware"
	"screenstock/internal/repository"
	"screenstock/internal/service"
	"screenstock/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	brandRepo := repository.NewBrandRepository(db)
	itemRepo := repository.NewItemRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	saleRepo := repository.NewSaleRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	ledgerSvc := service.NewLedgerService(itemRepo, customerRepo, movementRepo, saleRepo, dispatcher)
	itemSvc := service.NewItemService(itemRepo, brandRepo, movementRepo, saleRepo, ledgerSvc, rdb)
	brandSvc := service.NewBrandService(brandRepo, itemRepo, movementRepo, saleRepo)
	customerSvc := service.NewCustomerService(customerRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo)
	reportSvc := service.NewReportService(brandRepo, itemRepo, customerRepo, saleRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	brandsH := handler.NewBrandsHandler(brandSvc)
	itemsH := handler.NewItemsHandler(itemSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	salesH := handler.NewSalesHandler(ledgerSvc, saleSvc, cfg.PDFStoragePath)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health)

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Price check, no auth required
	r.GET("/v1/items/barcode/:code", itemsH.LookupBarcode)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		brands := v1.Group("/brands")
		{
			brands.POST("", brandsH.Create)
			brands.GET("", brandsH.List)
			brands.GET("/:id", brandsH.GetByID)
			brands.PUT("/:id", brandsH.Update)
			brands.DELETE("/:id", brandsH.Delete)
		}

		items := v1.Group("/items")
		{
			items.POST("", itemsH.Create)
			items.GET("", itemsH.List)
			items.GET("/search", itemsH.Search)
			items.GET("/:id", itemsH.GetByID)
			items.GET("/:id/barcode", itemsH.BarcodePNG)
			items.PUT("/:id", itemsH.Update)
			items.DELETE("/:id", itemsH.Delete)

			// Ledger mutations live under the item they affect
			items.POST("/:id/restock", ledgerH.Restock)
			items.PATCH("/:id/stock", ledgerH.Adjust)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.GetByID)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		stock := v1.Group("/stock")
		{
			stock.GET("/movements", ledgerH.Movements)
			stock.GET("/alerts", ledgerH.Alerts)
		}

		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
			sales.GET("/:id/invoice", salesH.Invoice)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/revenue-monthly", reportsH.RevenueMonthly)
			reports.GET("/sales-by-brand", reportsH.SalesByBrand)
			reports.GET("/forecast", reportsH.Forecast)
			reports.GET("/charts/revenue", reportsH.RevenueChart)
			reports.GET("/charts/brands", reportsH.BrandChart)
		}
	}

	return r
}
