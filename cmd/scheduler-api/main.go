package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classkit/scheduler-api/api/swagger"
	"github.com/classkit/scheduler-api/internal/handler"
	internalmiddleware "github.com/classkit/scheduler-api/internal/middleware"
	"github.com/classkit/scheduler-api/internal/repository"
	"github.com/classkit/scheduler-api/internal/service"
	"github.com/classkit/scheduler-api/internal/timetable"
	"github.com/classkit/scheduler-api/pkg/cache"
	"github.com/classkit/scheduler-api/pkg/config"
	"github.com/classkit/scheduler-api/pkg/database"
	"github.com/classkit/scheduler-api/pkg/export"
	"github.com/classkit/scheduler-api/pkg/logger"
	corsmiddleware "github.com/classkit/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classkit/scheduler-api/pkg/middleware/requestid"
)

// @title ClassKit Scheduler API
// @version 0.1.0
// @description Conflict-aware schedule variant generation, catalog imports, and exports
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	// The generator degrades to uncached operation when Redis is absent.
	cacheEnabled := cfg.Generator.CacheEnabled
	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, result caching disabled", "error", err)
		cacheEnabled = false
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Generator.CacheTTL, logr, cacheEnabled)

	policy := timetable.DefaultPolicy()
	if cfg.Generator.MaxVariants > 0 {
		policy.MaxVariants = cfg.Generator.MaxVariants
	}
	if cfg.Generator.MaxKeptVariants > 0 {
		policy.MaxKeptVariants = cfg.Generator.MaxKeptVariants
	}

	catalogSvc := service.NewCatalogService(repository.NewCatalogRepository(db), cacheSvc, validate, logr)
	generatorSvc := service.NewGeneratorService(cacheSvc, catalogSvc, metricsSvc, validate, logr, service.GeneratorConfig{
		Policy:   policy,
		Timeout:  cfg.Generator.Timeout,
		CacheTTL: cfg.Generator.CacheTTL,
	})
	exportSvc := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), validate, logr, service.ExportConfig{
		PDFTitle: cfg.Export.PDFTitle,
	})

	scheduleHandler := handler.NewScheduleHandler(generatorSvc, exportSvc)
	importHandler := handler.NewImportHandler(catalogSvc, cfg.Importer.MaxUploadBytes)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedules/variants", scheduleHandler.GenerateVariants)
		api.POST("/schedules/conflicts", scheduleHandler.ConflictReport)
		api.POST("/schedules/export", scheduleHandler.Export)

		api.POST("/imports/roster", importHandler.Roster)
		api.POST("/imports/portal", importHandler.Portal)

		api.POST("/catalogs", catalogHandler.Create)
		api.GET("/catalogs", catalogHandler.List)
		api.GET("/catalogs/:id", catalogHandler.Get)
		api.PUT("/catalogs/:id", catalogHandler.Update)
		api.DELETE("/catalogs/:id", catalogHandler.Delete)

		api.GET("/metrics/snapshot", metricsHandler.Snapshot)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
