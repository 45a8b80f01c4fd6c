package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gutvbooker/internal/cache"
	"gutvbooker/internal/config"
	"gutvbooker/internal/middleware"
	"gutvbooker/internal/modules/admin"
	"gutvbooker/internal/modules/auth"
	"gutvbooker/internal/modules/booking"
	"gutvbooker/internal/modules/catalog"
	"gutvbooker/internal/modules/realtime"
	jwtsvc "gutvbooker/internal/pkg/jwt"
	"gutvbooker/internal/pkg/response"
	"gutvbooker/internal/repository"
)

// Server is the wired HTTP application.
type Server struct {
	Engine *gin.Engine
	Hub    *realtime.Hub
}

// New wires repositories, services and handlers. rdb may be nil, in which
// case the catalog is read straight from the database.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	var bookingCatalog booking.CatalogRepository = equipmentRepo
	if rdb != nil {
		bookingCatalog = cache.NewCatalogCache(equipmentRepo, rdb, cfg.Redis.CatalogCacheTTL)
	}

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.AccessTTL)
	hub := realtime.NewHub()

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, cfg.JWT.AccessTTL))
	catalogHandler := catalog.NewHandler(catalog.NewService(equipmentRepo))
	adminHandler := admin.NewHandler(admin.NewService(userRepo))
	realtimeHandler := realtime.NewHandler(hub, j)

	bookingService := booking.NewService(
		userRepo,
		bookingCatalog,
		booking.NewGormRepository(bookingRepo),
		hub,
		booking.Options{
			AdvanceNoticeDays: cfg.Booking.AdvanceNoticeDays,
			MaxAttempts:       cfg.Booking.MaxAllocationAttempts,
		},
	)
	bookingHandler := booking.NewHandler(bookingService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.HTTP.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authHandler.RegisterPublicRoutes(api.Group("/auth"))

		// Websocket auth happens in the handler (token may be a query param).
		api.GET("/booking/ws", realtimeHandler.Subscribe)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected.Group("/auth"))
			catalogHandler.RegisterRoutes(protected.Group("/equipment"))
			bookingHandler.RegisterRoutes(protected.Group("/booking"))

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	return &Server{Engine: r, Hub: hub}
}
