package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/wasel-app/wasel-api/api/swagger"
	"github.com/wasel-app/wasel-api/internal/availability"
	"github.com/wasel-app/wasel-api/internal/handler"
	"github.com/wasel-app/wasel-api/internal/middleware"
	"github.com/wasel-app/wasel-api/internal/models"
	"github.com/wasel-app/wasel-api/internal/repository"
	"github.com/wasel-app/wasel-api/internal/service"
	"github.com/wasel-app/wasel-api/pkg/cache"
	"github.com/wasel-app/wasel-api/pkg/config"
	"github.com/wasel-app/wasel-api/pkg/database"
	"github.com/wasel-app/wasel-api/pkg/logger"
	corsmiddleware "github.com/wasel-app/wasel-api/pkg/middleware/cors"
	reqidmiddleware "github.com/wasel-app/wasel-api/pkg/middleware/requestid"
	"github.com/wasel-app/wasel-api/pkg/storage"
)

// @title Wasel API
// @version 0.1.0
// @description Restaurant availability and ordering backend
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without record cache", "error", err)
			redisClient = nil
		}
	}

	validate := validator.New()

	restaurantRepo := repository.NewRestaurantRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Availability.RecordCacheTTL, logr, redisClient != nil)

	resolver := availability.NewResolver(
		availability.LocaleByName(cfg.Availability.Locale),
		cfg.Availability.ClosingSoonMinutes,
	)

	restaurantService := service.NewRestaurantService(restaurantRepo, cacheService, resolver, metricsService, validate, logr,
		service.RestaurantServiceConfig{RecordCacheTTL: cfg.Availability.RecordCacheTTL}, time.Now)
	orderService := service.NewOrderService(orderRepo, restaurantService, metricsService, validate, logr)
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var exportService *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportService = service.NewExportService(restaurantRepo, store, signer, logr, service.ExportServiceConfig{
			DownloadTTL: cfg.Exports.SignedURLTTL,
			Workers:     cfg.Exports.WorkerConcurrency,
			MaxRetries:  cfg.Exports.WorkerRetries,
		})
		exportService.Start(ctx)
		defer exportService.Stop()
		go runExportCleanup(ctx, exportService, cfg.Exports.CleanupInterval, logr)
	}

	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	orderHandler := handler.NewOrderHandler(orderService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		restaurants := api.Group("/restaurants")
		{
			restaurants.GET("", restaurantHandler.List)
			restaurants.GET("/:id", restaurantHandler.Get)
			restaurants.GET("/:id/status", restaurantHandler.Status)
			restaurants.GET("/:id/eligibility", restaurantHandler.Eligibility)

			protected := restaurants.Group("", middleware.JWT(authService))
			{
				protected.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), restaurantHandler.Create)
				protected.PUT("/:id/schedule", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), restaurantHandler.UpdateSchedule)
				protected.POST("/:id/close", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), restaurantHandler.TemporaryClose)
				protected.POST("/:id/reopen", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), restaurantHandler.Reopen)
				protected.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), restaurantHandler.Delete)
				protected.GET("/:id/orders", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), orderHandler.ListByRestaurant)
			}
		}

		if cfg.Ordering.Enabled {
			orders := api.Group("/orders", middleware.JWT(authService))
			{
				orders.POST("", middleware.RequireRoles(models.RoleCustomer), orderHandler.Place)
				orders.GET("/:id", orderHandler.Get)
				orders.PUT("/:id/status", middleware.RequireRoles(models.RoleAdmin, models.RoleVendor), orderHandler.UpdateStatus)
			}
		}

		if exportService != nil {
			exportHandler := handler.NewExportHandler(exportService)
			exports := api.Group("/exports")
			{
				exports.GET("/download/:token", exportHandler.Download)
				exports.POST("", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin), exportHandler.Create)
				exports.GET("/:id", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin), exportHandler.Get)
			}
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup()
			if err != nil {
				logr.Sugar().Warnw("export cleanup failed", "error", err)
				continue
			}
			if len(removed) > 0 {
				logr.Sugar().Infow("expired exports removed", "count", len(removed))
			}
		}
	}
}
