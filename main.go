// File: stayhub/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/cache"
	"stayhub/config"
	"stayhub/cron"
	"stayhub/database"
	hotelRepoPkg "stayhub/database/repository/hotel"
	"stayhub/handlers"
	"stayhub/middleware"
	"stayhub/routes"
	"stayhub/services/booking"
	hotelSvc "stayhub/services/hotel"
	"stayhub/services/tasks"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories and the cache layer.
	hotelRepo := hotelRepoPkg.NewMongoHotelRepo()
	cacheLayer := cache.NewRedisCache(utils.GetCacheClient(), logger)

	// Deferred refund queue.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()
	refundScheduler := &tasks.AsynqRefundScheduler{Client: asynqClient}

	// Booking engine.
	availabilityChecker := &booking.DefaultAvailabilityChecker{Repo: hotelRepo}
	paymentAuthorizer := &booking.DefaultPaymentAuthorizer{
		Repo:           hotelRepo,
		Gateway:        booking.StripeGateway{},
		CommissionRate: config.AppConfig.CommissionRate,
		Currency:       config.AppConfig.Currency,
		Logger:         logger,
	}
	bookingCommitter := &booking.DefaultBookingCommitter{
		Repo:         hotelRepo,
		Availability: availabilityChecker,
		Payments:     paymentAuthorizer,
		Cache:        cacheLayer,
		Logger:       logger,
	}
	cancellationEngine := &booking.DefaultCancellationPolicyEngine{
		Repo:    hotelRepo,
		Cache:   cacheLayer,
		Refunds: refundScheduler,
		Logger:  logger,
	}

	hotelService := &hotelSvc.DefaultHotelService{
		Repo:   hotelRepo,
		Cache:  cacheLayer,
		Logger: logger,
	}

	bookingHandler := handlers.NewBookingHandler(
		availabilityChecker, paymentAuthorizer, bookingCommitter, cancellationEngine, hotelService, logger)
	hotelHandler := handlers.NewHotelHandler(hotelService, logger)

	routes.RegisterRoutes(router, bookingHandler, hotelHandler)

	// Start the refund worker.
	cron.InitRefundWorker()

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
