package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"

	"portfolio_checker/internal/app/service"
	"portfolio_checker/internal/client"
	"portfolio_checker/internal/infrastructure/configloader"
	"portfolio_checker/internal/infrastructure/filterloader"
	"portfolio_checker/internal/infrastructure/restapi"
	"portfolio_checker/internal/pkg/logger"
	"portfolio_checker/internal/pkg/metrics"
	"portfolio_checker/internal/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Failed to load .env file: %v", err)
	}

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zapConfig := zap.NewProductionConfig()
	if level, lerr := zap.ParseAtomicLevel(cfg.Logging.Level); lerr == nil {
		zapConfig.Level = level
	} else {
		logrus.Warnf("Invalid logging level %q, keeping zap default: %v", cfg.Logging.Level, lerr)
	}
	zapLogger, err := zapConfig.Build()
	if err != nil {
		logrus.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	// Route the global slog logger through zap so every package logs to the
	// same core.
	slogHandler := zapslog.NewHandler(zapLogger.Core())
	logger.SetHandler(slogHandler)

	appLogger := logger.NewSlogAdapter()

	metrics.MustRegisterMetrics()

	// Filter lists: compiled-in defaults overridden by the data file.
	filterLoader := filterloader.NewFilterFileLoader(cfg.Filters.File, appLogger.Info, appLogger.Warn)
	filterLists, err := filterLoader.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load filter lists", zap.String("path", cfg.Filters.File), zap.Error(err))
	}

	neynarTimeout := time.Duration(cfg.Neynar.RequestTimeoutMillis) * time.Millisecond
	neynarClient := client.NewNeynarClient(
		cfg.Neynar.BaseURL,
		cfg.Neynar.APIKey,
		neynarTimeout,
		cfg.Neynar.RateLimitPerSecond,
		cfg.Neynar.RateBurst,
		zapLogger,
	)
	zapLogger.Info("Neynar client initialized")

	bankrTimeout := time.Duration(cfg.Bankr.RequestTimeoutMillis) * time.Millisecond
	bankrClient := client.NewBankrClient(cfg.Bankr.BaseURL, bankrTimeout, zapLogger)
	zapLogger.Info("Bankr client initialized")

	profileService := service.NewProfileService(
		neynarClient,
		appLogger,
		time.Duration(cfg.ProfileSvc.CacheTTLMinutes)*time.Minute,
		time.Duration(cfg.ProfileSvc.CleanupIntervalMinutes)*time.Minute,
	)
	zapLogger.Info("ProfileService initialized")

	aggregator := service.NewAggregator(filterLists, appLogger)
	portfolioService := service.NewPortfolioService(profileService, neynarClient, bankrClient, aggregator, appLogger, cfg)
	zapLogger.Info("PortfolioService initialized")

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(utils.MetricsMiddleware())
	router.Use(gin.Recovery())

	portfolioHandler := restapi.NewPortfolioHandler(profileService, portfolioService, appLogger)
	restapi.RegisterRoutes(router, portfolioHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	zapLogger.Info("Prometheus metrics endpoint enabled", zap.String("path", "/metrics"))

	if cfg.Swagger.Enabled {
		router.StaticFile("/docs/swagger.yaml", "./docs/swagger.yaml")
		swaggerURL := ginSwagger.URL("/docs/swagger.yaml")
		router.GET(cfg.Swagger.Path+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
		zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path+"/index.html"))
	}

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
