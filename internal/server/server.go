package server

import (
	"context"
	"net/http"

	"gymcore/internal/auth"
	"gymcore/internal/config"
	"gymcore/internal/location"
	"gymcore/internal/loyalty"
	"gymcore/internal/membership"
	"gymcore/internal/notify"
	"gymcore/internal/payment"
	"gymcore/internal/reservation"
	"gymcore/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router      *gin.Engine
	http        *http.Server
	db          *sqlx.DB
	config      *config.Config
	notify      *notify.Service
	memberships membership.Service
	loyalty     loyalty.Service
}

func New(db *sqlx.DB, cfg *config.Config, notifyService *notify.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())

	// One shared limiter; registered after auth on protected groups so
	// authenticated callers are throttled per user rather than per IP.
	rateLimit := RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	userRepo := user.NewRepository(db)
	locationRepo := location.NewRepository(db)
	membershipRepo := membership.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)
	loyaltyRepo := loyalty.NewRepository(db)

	paymentGateway := payment.NewGateway(cfg.PaymentProviderURL, cfg.PaymentProviderSecret)

	userService := user.NewService(userRepo, cfg.JWTSecret)
	locationService := location.NewService(locationRepo)
	loyaltyService := loyalty.NewService(loyaltyRepo)
	membershipService := membership.NewService(membershipRepo, paymentGateway, loyaltyService, userRepo, notifyService)
	reservationService := reservation.NewService(
		reservationRepo,
		paymentGateway,
		loyaltyService,
		loyaltyService,
		userRepo,
		notifyService,
		cfg.GroupClassFeeCents,
	)

	userHandler := user.NewHandler(userService)
	locationHandler := location.NewHandler(locationService)
	membershipHandler := membership.NewHandler(membershipService)
	reservationHandler := reservation.NewHandler(reservationService)
	loyaltyHandler := loyalty.NewHandler(loyaltyService)

	public := router.Group("/auth")
	public.Use(rateLimit)
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	router.GET("/locations", rateLimit, locationHandler.List)
	router.GET("/locations/:locationID", rateLimit, locationHandler.Get)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware, rateLimit)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/plans", membershipHandler.ListPlans)
		protected.GET("/plans/:planID/quote", membershipHandler.Quote)
		protected.POST("/memberships/purchase", membershipHandler.Purchase)
		protected.POST("/memberships/renew", membershipHandler.Renew)
		protected.GET("/memberships", membershipHandler.ListMine)
		protected.POST("/memberships/:membershipID/suspend", membershipHandler.Suspend)
		protected.POST("/memberships/:membershipID/reactivate", membershipHandler.Reactivate)
		protected.POST("/memberships/:membershipID/cancel", membershipHandler.Cancel)

		protected.GET("/locations/:locationID/classes", reservationHandler.ListClasses)
		protected.POST("/classes/:classID/join", reservationHandler.Join)
		protected.POST("/classes/:classID/join-paid", reservationHandler.JoinWithPayment)
		protected.POST("/reservations", reservationHandler.CreateReservation)
		protected.GET("/reservations", reservationHandler.ListMine)
		protected.POST("/reservations/:reservationID/cancel", reservationHandler.Cancel)

		protected.GET("/loyalty/profile", loyaltyHandler.GetProfile)
		protected.GET("/loyalty/activities", loyaltyHandler.ListActivities)
		protected.GET("/loyalty/rewards", loyaltyHandler.ListRewards)
		protected.POST("/loyalty/redeem", loyaltyHandler.Redeem)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware, rateLimit)
	{
		admin.POST("/locations", locationHandler.Create)
		admin.DELETE("/locations/:locationID", locationHandler.Deactivate)
		admin.POST("/classes", reservationHandler.CreateClass)
		admin.GET("/classes/:classID/participants", reservationHandler.ListParticipants)
		admin.POST("/loyalty/activities", loyaltyHandler.LogActivity)
		admin.POST("/loyalty/activities/:activityID/cancel", loyaltyHandler.CancelActivity)
		admin.POST("/sweeps/lifecycle", membershipHandler.RunSweep)
		admin.POST("/sweeps/loyalty", loyaltyHandler.RunExpiry)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-notification", TestNotification(notifyService))
	SetupSwagger(router)

	return &Server{
		router:      router,
		db:          db,
		config:      cfg,
		notify:      notifyService,
		memberships: membershipService,
		loyalty:     loyaltyService,
	}
}

// MembershipService exposes the membership service for background jobs.
func (s *Server) MembershipService() membership.Service {
	return s.memberships
}

// LoyaltyService exposes the loyalty service for background jobs.
func (s *Server) LoyaltyService() loyalty.Service {
	return s.loyalty
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
