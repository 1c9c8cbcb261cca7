package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academic-records-api/api/swagger"
	"github.com/noah-isme/academic-records-api/internal/handler"
	"github.com/noah-isme/academic-records-api/internal/middleware"
	"github.com/noah-isme/academic-records-api/internal/repository"
	"github.com/noah-isme/academic-records-api/internal/service"
	"github.com/noah-isme/academic-records-api/pkg/cache"
	"github.com/noah-isme/academic-records-api/pkg/config"
	"github.com/noah-isme/academic-records-api/pkg/database"
	"github.com/noah-isme/academic-records-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academic-records-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academic-records-api/pkg/middleware/requestid"
)

// @title Academic Records API
// @version 1.0.0
// @description Students, modules, registrations and grades with per-student and per-module averages.
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	probes := map[string]handler.Pinger{"database": db}
	var cacheRepo service.CacheRepository
	if cfg.Reports.CacheEnabled {
		switch cfg.Reports.CacheBackend {
		case config.CacheBackendMemory:
			cacheRepo = repository.NewMemoryCacheRepository(cfg.Reports.CacheTTL)
		default:
			client, err := cache.NewRedis(ctx, cfg.Redis)
			if err != nil {
				logr.Warn("redis unavailable, report cache disabled", zap.Error(err))
				break
			}
			defer client.Close()
			redisRepo := repository.NewCacheRepository(client)
			cacheRepo = redisRepo
			probes["redis"] = handler.PingFunc(redisRepo.Ping)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cacheRepo != nil)

	studentRepo := repository.NewStudentRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	gradeRepo := repository.NewGradeRepository(db)

	gradeSvc := service.NewGradeService(gradeRepo, studentRepo, moduleRepo, registrationRepo, cacheSvc, metrics, logr)
	studentSvc := service.NewStudentService(studentRepo, cacheSvc, nil, logr)
	moduleSvc := service.NewModuleService(moduleRepo, cacheSvc, nil, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, studentRepo, moduleRepo, nil, logr)
	reportSvc := service.NewReportService(gradeSvc, studentRepo, moduleRepo, cacheSvc, metrics, logr)

	metricsHandler := handler.NewMetricsHandler(metrics, probes)
	handlers := handler.Handlers{
		Grades:        handler.NewGradeHandler(gradeSvc),
		Students:      handler.NewStudentHandler(studentSvc),
		Modules:       handler.NewModuleHandler(moduleSvc),
		Registrations: handler.NewRegistrationHandler(registrationSvc),
		Reports:       handler.NewReportHandler(reportSvc),
		Metrics:       metricsHandler,
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterProbes(r, metricsHandler, cfg.Metrics.Enabled)
	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("report_cache", cacheRepo != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logr.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
