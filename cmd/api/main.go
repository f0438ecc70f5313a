package main

import (
	"log"

	"go.uber.org/zap"

	"canbrs/internal/config"
	"canbrs/internal/database"
	"canbrs/internal/events"
	"canbrs/internal/middleware"
	"canbrs/internal/modules/auth"
	"canbrs/internal/modules/catalog"
	"canbrs/internal/modules/reservation"
	"canbrs/internal/modules/resident"
	"canbrs/internal/notification"
	jwtsvc "canbrs/internal/pkg/jwt"
	"canbrs/internal/repository"
	"canbrs/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	reservationStore := repository.NewReservationStore(db)
	listingRepo := repository.NewListingRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	residentRepo := repository.NewResidentRepository(db)
	regKeyRepo := repository.NewRegKeyRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	notifier := buildNotifier(cfg, logger)

	bus := events.NewBus(logger)
	hub := ws.NewHub()
	defer hub.Close()

	notification.RegisterListeners(bus, notifier)
	ws.RegisterListeners(bus, hub)

	reservationService := reservation.NewService(reservationStore, bus, logger)
	reservationHandler := reservation.NewHandler(reservationService)

	catalogService := catalog.NewService(listingRepo, hub)
	catalogHandler := catalog.NewHandler(catalogService)

	authService := auth.NewService(adminRepo, residentRepo, regKeyRepo, j, notifier, cfg.ResetTokenTTL, cfg.FrontendURL)
	authHandler := auth.NewHandler(authService)

	residentService := resident.NewService(residentRepo, adminRepo, notifier)
	residentHandler := resident.NewHandler(residentService)

	wsHandler := ws.NewHandler(hub, j, logger)

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		v1.GET("/ws", wsHandler.HandleWebSocket)

		// any authenticated user
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
		}

		residents := v1.Group("/")
		residents.Use(middleware.JWTAuth(j), middleware.ResidentOnly())
		{
			reservationHandler.RegisterResidentRoutes(residents)
		}

		admins := v1.Group("/")
		admins.Use(middleware.JWTAuth(j), middleware.AdminOnly())
		{
			reservationHandler.RegisterAdminRoutes(admins)
			catalogHandler.RegisterAdminRoutes(admins)
			authHandler.RegisterAdminRoutes(admins)
			residentHandler.RegisterAdminRoutes(admins)
		}
	}

	logger.Info("starting api", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// buildNotifier wires the real SMS/email providers when keys are present
// and falls back to a logging no-op in development.
func buildNotifier(cfg *config.Config, logger *zap.Logger) notification.Sender {
	if cfg.Semaphore.APIKey == "" && cfg.Mailtrap.APIToken == "" {
		logger.Warn("no notification provider configured, using noop sender")
		return &notification.NoopSender{Logger: logger}
	}

	sms := notification.NewSemaphoreClient(cfg.Semaphore.APIKey, cfg.Semaphore.SenderName)
	email := notification.NewMailtrapClient(cfg.Mailtrap.APIToken, cfg.Mailtrap.FromEmail, cfg.Mailtrap.FromName)
	return notification.NewService(sms, email, logger)
}
