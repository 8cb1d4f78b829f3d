package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/launchhub/portal_end/config"
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/routes"
	"github.com/launchhub/portal_end/service"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.LoadConfig()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := repository.InitMongoDB(cfg.MongoURI, cfg.MongoDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer repository.CloseMongoDB()

	if err := service.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer service.CloseRedis()

	service.InitEvents(cfg)
	defer service.CloseEvents()

	service.InitPayments(cfg.MidtransServerKey, cfg.MidtransProd)

	mailer := service.NewMailer(cfg)
	controllers.SetMailer(mailer)
	if !mailer.Enabled() {
		utils.Logger.Warn().Msg("SMTP not configured, outbound mail disabled")
	}

	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OperationLoggerMiddleware())

	routes.RegisterRoutes(router)

	utils.Logger.Info().Msg("starting system initialization...")
	if err := repository.InitializeCollections(); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to initialize collections")
	}
	if err := repository.InitializeAdminAccount(); err != nil {
		utils.Logger.Error().Err(err).Msg("failed to initialize admin account")
	}
	utils.Logger.Info().Msg("system initialization complete")

	// nightly housekeeping
	service.ScheduleDailyTaskAt(2, 0, 0, service.ExpireLapsedMemberships)
	service.ScheduleDailyTaskAt(8, 0, 0, func() {
		service.SendWebinarReminders(mailer)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Msgf("server listening on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.Logger.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Logger.Fatal().Err(err).Msg("server shutdown failed")
	}

	utils.Logger.Info().Msg("server stopped cleanly")
}
