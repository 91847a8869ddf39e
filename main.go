package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shiki0138/sms-sub001/config"
	"github.com/Shiki0138/sms-sub001/cron"
	"github.com/Shiki0138/sms-sub001/database"
	customerRepo "github.com/Shiki0138/sms-sub001/database/repository/customer"
	reservationRepo "github.com/Shiki0138/sms-sub001/database/repository/reservation"
	staffRepo "github.com/Shiki0138/sms-sub001/database/repository/staff"
	"github.com/Shiki0138/sms-sub001/handlers"
	"github.com/Shiki0138/sms-sub001/middleware"
	"github.com/Shiki0138/sms-sub001/routes"
	"github.com/Shiki0138/sms-sub001/services/optimizer"
	"github.com/Shiki0138/sms-sub001/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	staff := staffRepo.NewMongoStaffRepo()
	customers := customerRepo.NewMongoCustomerRepo()
	reservations := reservationRepo.NewCachedReservationRepo(
		reservationRepo.NewMongoReservationRepo(),
		utils.GetCacheClient(),
	)

	// services.
	optimizerService := optimizer.NewOptimizerServiceWithWeights(
		staff, reservations, customers, optimizer.LoadScoringWeights())
	optimizerHandler := handlers.NewOptimizerHandler(optimizerService, logger)

	routes.RegisterRoutes(router, optimizerHandler)

	// Background demand precompute.
	cron.InitForecastWorker(optimizerService)
	if err := cron.EnqueueForecastPrecompute(config.AppConfig.ForecastHorizonDays); err != nil {
		logger.Sugar().Warnf("main: failed to enqueue forecast precompute: %v", err)
	}

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
