package server

import (
	"context"
	"net/http"

	"campobook/internal/auth"
	"campobook/internal/booking"
	"campobook/internal/config"
	"campobook/internal/email"
	"campobook/internal/facility"
	"campobook/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(10, 20))

	userRepo := user.NewRepository(db)
	facilityRepo := facility.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	facilityService := facility.NewService(facilityRepo)
	bookingService := booking.NewService(bookingRepo, facilityRepo, userRepo, emailService, cfg.StoreTimeout)

	userHandler := user.NewHandler(userService)
	facilityHandler := facility.NewHandler(facilityService)
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/facilities", facilityHandler.ListFacilities)
		protected.GET("/facilities/:facilityID", facilityHandler.GetFacility)
		protected.GET("/facilities/:facilityID/fields", facilityHandler.ListFields)
		protected.GET("/fields/:fieldID/quote", bookingHandler.QuoteBooking)
		protected.GET("/fields/:fieldID/free", bookingHandler.ListFreeSlots)
		protected.POST("/bookings", bookingHandler.CreateBooking)
		protected.GET("/bookings", bookingHandler.ListMyBookings)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	owner := router.Group("/owner")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		owner.POST("/facilities", facilityHandler.CreateFacility)
		owner.PATCH("/facilities/:facilityID/hours", facilityHandler.UpdateOpeningHours)
		owner.PATCH("/facilities/:facilityID/status", facilityHandler.UpdateStatus)
		owner.POST("/facilities/:facilityID/fields", facilityHandler.CreateField)
		owner.GET("/facilities/:facilityID/bookings", bookingHandler.ListBookingsByFacility)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
