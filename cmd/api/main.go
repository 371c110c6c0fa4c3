package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"ofiz/internal/config"
	"ofiz/internal/database"
	"ofiz/internal/gateway/mercadopago"
	"ofiz/internal/middleware"
	"ofiz/internal/modules/admin"
	"ofiz/internal/modules/auth"
	"ofiz/internal/modules/booking"
	"ofiz/internal/modules/catalog"
	"ofiz/internal/modules/chat"
	"ofiz/internal/modules/notification"
	"ofiz/internal/modules/payment"
	"ofiz/internal/modules/referral"
	"ofiz/internal/modules/subscription"
	jwtsvc "ofiz/internal/pkg/jwt"
	"ofiz/internal/pkg/metrics"
	"ofiz/internal/ratelimit"
	"ofiz/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	gateway, err := mercadopago.New(mercadopago.Config{
		AccessToken:     cfg.MPAccessToken,
		BaseURL:         cfg.MPBaseURL,
		SuccessBackURL:  cfg.MPSuccessURL,
		FailureBackURL:  cfg.MPFailureURL,
		PendingBackURL:  cfg.MPPendingURL,
		NotificationURL: cfg.MPWebhookURL,
	})
	if err != nil {
		log.Fatal(err)
	}

	hub := chat.NewHub()

	var presence chat.PresenceStore = chat.NewMemoryPresence()
	var limiterStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("redis ping failed: ", err)
		}
		presence = chat.NewRedisPresence(rdb)
		limiterStore = ratelimit.NewRedisStore(rdb, "ofiz")
	}
	limiter := ratelimit.NewLimiter(limiterStore, cfg.RateLimit, cfg.RateWindow)

	notificationService := notification.NewService(notificationRepo, hub, log.Printf)
	referralService := referral.NewService(referralRepo, cfg.ReferralReward, log.Printf)
	subscriptionService := subscription.NewService(subscriptionRepo, gateway, log.Printf)
	authService := auth.NewService(userRepo, j, referralService, log.Printf)
	catalogService := catalog.NewService(listingRepo, userRepo, log.Printf)
	bookingService := booking.NewService(bookingRepo, listingRepo, subscriptionService, notificationService, log.Printf)
	paymentService := payment.NewService(paymentRepo, bookingRepo, gateway, notificationService, referralService, cfg.CommissionRate, log.Printf)
	chatService := chat.NewService(chatRepo, subscriptionService, notificationService, hub, presence, log.Printf)
	adminService := admin.NewService(userRepo, paymentRepo, log.Printf)

	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	referralHandler := referral.NewHandler(referralService)
	chatHandler := chat.NewHandler(chatService)
	notificationHandler := notification.NewHandler(notificationService)
	adminHandler := admin.NewHandler(adminService)
	wsHandler := chat.NewWSHandler(hub, j, chatService, log.Printf)

	go expireSubscriptions(subscriptionService)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("/")
		public.Use(middleware.RateLimit(limiter))
		{
			authHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			subscriptionHandler.RegisterPublicRoutes(public)
			paymentHandler.RegisterPublicRoutes(public) // gateway webhook
		}

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j), middleware.RateLimit(limiter))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			subscriptionHandler.RegisterProtectedRoutes(protected)
			referralHandler.RegisterProtectedRoutes(protected)
			chatHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterProtectedRoutes(protected)
		}

		adminGroup := v1.Group("/")
		adminGroup.Use(middleware.Auth(j), middleware.AdminOnly())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}

		// websocket authenticates itself via ?token=
		wsHandler.RegisterRoutes(v1)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// expireSubscriptions periodically marks overdue subscriptions expired
// so the next consume falls back to the free tier.
func expireSubscriptions(svc *subscription.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		n, err := svc.ExpireOverdue(ctx)
		cancel()
		if err != nil {
			log.Printf("subscription expiry sweep failed: %v", err)
			continue
		}
		if n > 0 {
			log.Printf("expired %d overdue subscriptions", n)
		}
	}
}
