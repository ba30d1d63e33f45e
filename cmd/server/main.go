package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	fulfillmentapp "github.com/wms/backend/internal/application/fulfillment"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	reportapp "github.com/wms/backend/internal/application/report"
	scanapp "github.com/wms/backend/internal/application/scan"
	warehouseapp "github.com/wms/backend/internal/application/warehouse"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/scheduler"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	// OTEL log export: tee a bridge core into the logger so records also
	// reach the collector
	logsProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Warn("OTEL log export unavailable, continuing with local logging only", zap.Error(err))
	} else {
		defer func() {
			if err := logsProvider.Shutdown(context.Background()); err != nil {
				log.Error("Error shutting down logger provider", zap.Error(err))
			}
		}()
		log = telemetry.BridgeZapLogger(log, telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: logsProvider,
			Level:          cfg.Log.Level,
		})
	}

	log.Info("Starting WMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabase(&cfg.Database, log, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Metrics export with periodic warehouse gauge collection
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()
	if meterProvider.IsEnabled() {
		warehouseMetrics, err := telemetry.NewWarehouseMetrics(telemetry.WarehouseMetricsConfig{
			Meter:    meterProvider.Meter(cfg.Telemetry.ServiceName),
			Logger:   log,
			Provider: telemetry.NewGormWarehouseMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize warehouse metrics", zap.Error(err))
		} else {
			warehouseMetrics.StartPeriodicCollection(context.Background(), cfg.Telemetry.MetricsInterval)
			defer warehouseMetrics.Stop()
		}
	}

	dbTracing := telemetry.DefaultDBTracingConfig()
	dbTracing.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled
	if err := telemetry.RegisterDBTracing(db.DB, dbTracing, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	pickTicketRepo := persistence.NewGormPickTicketRepository(db.DB)
	_ = pickTicketRepo // constructed but not yet wired into any service
	zoneRepo := persistence.NewGormZoneRepository(db.DB)
	scanEventRepo := persistence.NewGormScanEventRepository(db.DB)
	stockReportRepo := persistence.NewGormStockReportRepository(db.DB)
	fulfillmentReportRepo := persistence.NewGormFulfillmentReportRepository(db.DB)

	// Transaction scope shared by the fulfillment services
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Report cache (Redis with in-memory fallback)
	var reportCache shared.ReportCache
	if cfg.Report.CacheEnabled {
		cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cache.WithLogger(log))
		c, err := cacheFactory.CreateCache()
		if err != nil {
			log.Warn("Report cache unavailable, reports will hit storage directly", zap.Error(err))
		} else {
			reportCache = c
		}
	}

	// Initialize application services
	ledgerService := fulfillmentapp.NewLedgerService(shipmentRepo, txScope)
	syncService := fulfillmentapp.NewSyncService(txScope, log)
	inventoryService := inventoryapp.NewService(inventoryItemRepo)
	zoneService := warehouseapp.NewZoneService(zoneRepo)
	scanService := scanapp.NewService(scanEventRepo, inventoryItemRepo)
	reportService := reportapp.NewService(stockReportRepo, fulfillmentReportRepo, reportCache, log)
	reportService.SetCacheTTL(cfg.Report.CacheTTL)

	// Pick ticket reconciliation scheduler (if enabled)
	if cfg.Sync.Enabled {
		pickScheduler := scheduler.NewPickSyncScheduler(scheduler.PickSyncSchedulerConfig{
			Interval: cfg.Sync.Interval,
		}, syncService, log)
		if err := pickScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start pick sync scheduler", zap.Error(err))
		}
		defer func() {
			if err := pickScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping pick sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Pick sync scheduler started", zap.Duration("interval", cfg.Sync.Interval))
	}

	// Initialize HTTP handlers
	shipmentHandler := handler.NewShipmentHandler(ledgerService, syncService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	zoneHandler := handler.NewZoneHandler(zoneService)
	scanHandler := handler.NewScanHandler(scanService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. Tracing - Create request spans, mark error responses
	// 6. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Fulfillment domain (shipments, pick ticket sync)
	fulfillmentRoutes := router.NewDomainGroup("fulfillment", "/fulfillment")
	fulfillmentRoutes.POST("/shipments", shipmentHandler.Create)
	fulfillmentRoutes.GET("/shipments", shipmentHandler.List)
	fulfillmentRoutes.GET("/shipments/:id", shipmentHandler.GetByID)
	fulfillmentRoutes.POST("/shipments/:id/status", shipmentHandler.TransitionStatus)
	fulfillmentRoutes.DELETE("/shipments/:id", shipmentHandler.Delete)
	fulfillmentRoutes.POST("/sync", shipmentHandler.SyncPickTickets)

	// Inventory domain
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/items", inventoryHandler.Create)
	inventoryRoutes.GET("/items", inventoryHandler.List)
	inventoryRoutes.GET("/items/:id", inventoryHandler.GetByID)
	inventoryRoutes.PATCH("/items/:id/quantity", inventoryHandler.AdjustQuantity)
	inventoryRoutes.POST("/items/:id/deactivate", inventoryHandler.Deactivate)
	inventoryRoutes.DELETE("/items/:id", inventoryHandler.Delete)

	// Warehouse domain (zones)
	warehouseRoutes := router.NewDomainGroup("warehouse", "/warehouse")
	warehouseRoutes.POST("/zones", zoneHandler.Create)
	warehouseRoutes.GET("/zones", zoneHandler.List)
	warehouseRoutes.GET("/zones/:id", zoneHandler.GetByID)
	warehouseRoutes.PUT("/zones/:id", zoneHandler.Update)
	warehouseRoutes.DELETE("/zones/:id", zoneHandler.Delete)

	// Scan domain (barcode scan events)
	scanRoutes := router.NewDomainGroup("scan", "/scans")
	scanRoutes.POST("", scanHandler.Record)
	scanRoutes.GET("", scanHandler.List)

	// Report domain
	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/stock/summary", reportHandler.GetStockSummary)
	reportRoutes.GET("/stock/by-warehouse", reportHandler.GetStockByWarehouse)
	reportRoutes.GET("/stock/low", reportHandler.GetLowStockItems)
	reportRoutes.GET("/fulfillment/summary", reportHandler.GetFulfillmentSummary)
	reportRoutes.GET("/fulfillment/daily-volume", reportHandler.GetDailyShipmentVolume)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(fulfillmentRoutes).
		Register(inventoryRoutes).
		Register(warehouseRoutes).
		Register(scanRoutes).
		Register(reportRoutes).
		Register(systemRoutes)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
