package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/alanjal-marks-api/api/swagger"
	"github.com/noah-isme/alanjal-marks-api/internal/handler"
	"github.com/noah-isme/alanjal-marks-api/internal/middleware"
	"github.com/noah-isme/alanjal-marks-api/internal/repository"
	"github.com/noah-isme/alanjal-marks-api/internal/service"
	"github.com/noah-isme/alanjal-marks-api/internal/session"
	"github.com/noah-isme/alanjal-marks-api/internal/upstream"
	"github.com/noah-isme/alanjal-marks-api/pkg/cache"
	"github.com/noah-isme/alanjal-marks-api/pkg/config"
	"github.com/noah-isme/alanjal-marks-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/alanjal-marks-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/alanjal-marks-api/pkg/middleware/requestid"
)

// @title Alanjal Marks API
// @version 0.1.0
// @description Admin dashboard backend for student assessment marks
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	upstreamClient := upstream.New(cfg.Upstream, logr)
	upstreamClient.SetObserver(metricsSvc)

	rewardRepo := repository.NewRewardRepository(redisClient, cfg.Rewards.StorageKey, logr)
	preferenceRepo := repository.NewPreferenceRepository(redisClient, cfg.Rewards.PreferenceTTL)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	sessionStore := session.NewStore(cfg.Sessions.TTL)

	marksSvc := service.NewMarksService(upstreamClient, upstreamClient, logr)
	sessionSvc := service.NewSessionService(sessionStore, upstreamClient, upstreamClient, marksSvc, logr)
	rewardSvc := service.NewRewardService(rewardRepo, logr)
	preferenceSvc := service.NewPreferenceService(preferenceRepo)
	rosterSvc := service.NewRosterService(upstreamClient, cacheRepo, cfg.Classes.CacheTTL, metricsSvc, logr)
	settingsSvc := service.NewSettingsService(upstreamClient)

	marksHandler := handler.NewMarksHandler(marksSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	preferenceHandler := handler.NewPreferenceHandler(preferenceSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(cfg.JWT.Secret))
	{
		api.GET("/marks", marksHandler.List)
		api.POST("/marks/clear", marksHandler.Clear)

		api.POST("/sessions", sessionHandler.Begin)
		api.POST("/sessions/:id/stage", sessionHandler.Stage)
		api.POST("/sessions/:id/fill", sessionHandler.Fill)
		api.GET("/sessions/:id/preview", sessionHandler.Preview)
		api.POST("/sessions/:id/commit", sessionHandler.Commit)
		api.DELETE("/sessions/:id", sessionHandler.Cancel)

		api.GET("/rewards", rewardHandler.List)
		api.GET("/rewards/sets", rewardHandler.Sets)
		api.GET("/rewards/:studentId", rewardHandler.Get)
		api.PUT("/rewards/:studentId", rewardHandler.Set)
		api.POST("/rewards/:studentId/toggle", rewardHandler.Toggle)

		api.GET("/preferences", preferenceHandler.Get)
		api.PUT("/preferences", preferenceHandler.Set)

		api.GET("/classes", rosterHandler.Classes)
		api.GET("/weeks", rosterHandler.Weeks)
		api.GET("/settings", settingsHandler.Get)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
