package router

import (
	"time"

	"github.com/anish435/Hotel-Inventory-management-system/internal/config"
	"github.com/anish435/Hotel-Inventory-management-system/internal/handler"
	"github.com/anish435/Hotel-Inventory-management-system/internal/middleware"
	"github.com/anish435/Hotel-Inventory-management-system/internal/notify"
	"github.com/anish435/Hotel-Inventory-management-system/internal/repository"
	"github.com/anish435/Hotel-Inventory-management-system/internal/service"
	"github.com/anish435/Hotel-Inventory-management-system/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, broker *notify.Broker) *gin.Engine {
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
	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	priceRepo := repository.NewPriceChangeRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	events := notify.NewPublisher(rdb)
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewLedgerService(inventoryRepo, roomRepo, saleRepo, staffRepo, priceRepo, dispatcher, events)
	reportSvc := service.NewReportService(saleRepo, dispatcher, cfg)
	staffSvc := service.NewStaffService(staffRepo, events)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	roomsH := handler.NewRoomsHandler(ledgerSvc)
	inventoryH := handler.NewInventoryHandler(ledgerSvc)
	salesH := handler.NewSalesHandler(ledgerSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	staffH := handler.NewStaffHandler(staffSvc)
	usersH := handler.NewUsersHandler(authSvc)
	eventsH := handler.NewEventsHandler(broker)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/auth/change-password", authH.ChangePassword)

		// Live change feed — any authenticated terminal
		v1.GET("/events", eventsH.Stream)

		// Rooms — any authenticated terminal records orders and checkouts
		rooms := v1.Group("/rooms")
		{
			rooms.GET("", roomsH.List)
			rooms.GET("/:number", roomsH.Get)
			rooms.POST("/:number/lines", roomsH.AddLine)
			rooms.DELETE("/:number/lines/:index", roomsH.RemoveLine)
			rooms.POST("/:number/checkout", roomsH.Checkout)
		}

		// Inventory — reads and restocking for all, catalog changes admin only
		v1.GET("/inventory", inventoryH.List)
		v1.PATCH("/inventory/:id/stock", inventoryH.Restock)
		v1.GET("/inventory/:id/price-history", inventoryH.PriceHistory)
		inv := v1.Group("/inventory", middleware.RequireRole("admin"))
		{
			inv.POST("", inventoryH.Create)
			inv.DELETE("/:id", inventoryH.Delete)
			inv.PATCH("/:id/price", inventoryH.SetPrice)
		}

		// Sales ledger — append from any terminal, delete admin only
		v1.GET("/sales", salesH.List)
		v1.GET("/sales/:id", salesH.Get)
		v1.POST("/sales/walk-in", salesH.WalkIn)
		v1.DELETE("/sales/:id", middleware.RequireRole("admin"), salesH.Delete)

		// Reports
		v1.GET("/reports/daily-ledger", reportsH.DailyLedger)
		v1.POST("/reports/daily-ledger/email", middleware.RequireRole("admin"), reportsH.EmailDailyLedger)

		// Staff roster — admin manages, everyone reads (line attribution)
		v1.GET("/staff", staffH.List)
		staff := v1.Group("/staff", middleware.RequireRole("admin"))
		{
			staff.POST("", staffH.Create)
			staff.PUT("/:id", staffH.Update)
			staff.DELETE("/:id", staffH.Delete)
		}

		// User accounts — admin only
		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
