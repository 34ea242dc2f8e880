package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"clinicport/config"
	"clinicport/database"
	accountRepo "clinicport/database/repository/account"
	appointmentRepo "clinicport/database/repository/appointment"
	"clinicport/handlers"
	"clinicport/middleware"
	"clinicport/routes"
	"clinicport/services/account"
	"clinicport/services/appointment"
	"clinicport/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	acctRepo := accountRepo.NewMongoAccountRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create appointment indexes: %v", err)
	}
	if err := acctRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create account indexes: %v", err)
	}

	// services.
	schedulingService := &appointment.DefaultSchedulingService{
		Repo: apptRepo,
	}
	accountService := &account.DefaultAccountService{
		Repo: acctRepo,
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Auth:        handlers.NewAuthHandler(accountService),
		Schedule:    handlers.NewScheduleHandler(schedulingService, utils.GetCacheClient()),
		Appointment: handlers.NewAppointmentHandler(schedulingService),
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}, database.MongoClient)

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
	database.CloseDB(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
