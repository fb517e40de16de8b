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

	"wallet_scanner/internal/adapters"
	"wallet_scanner/internal/app/service"
	"wallet_scanner/internal/config"
	"wallet_scanner/internal/infrastructure/catalog"
	"wallet_scanner/internal/infrastructure/oracle"
	"wallet_scanner/internal/infrastructure/registry"
	"wallet_scanner/internal/infrastructure/restapi"
	"wallet_scanner/internal/pipeline"
	"wallet_scanner/internal/pkg/logger"
	"wallet_scanner/internal/pkg/metrics"
	"wallet_scanner/internal/query"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	cfgPath := getEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath), zap.Int("chains", len(cfg.Chains)))

	metrics.MustRegisterMetrics()

	chainRegistry := registry.NewChainRegistry(cfg, zapLogger)

	tokenCatalog, err := catalog.NewFileCatalog("data/tokens", zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to load token catalog", zap.Error(err))
	}

	transport := query.NewGethTransport(time.Duration(cfg.Scanner.RPCCallTimeoutMs)*time.Millisecond, zapLogger)
	executor := query.NewExecutor(transport, chainRegistry, cfg, zapLogger)
	batchClient := query.NewBatchClient(transport, chainRegistry, zapLogger)

	dexScreenerClient := oracle.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		cfg.DEXScreener.MaxTokensPerRequest,
	)
	priceCache := oracle.NewTTLPriceCache(
		time.Duration(cfg.PriceCache.TTLMinutes)*time.Minute,
		time.Duration(cfg.PriceCache.CleanupIntervalMinutes)*time.Minute,
	)
	priceOracle := oracle.NewPriceOracle(dexScreenerClient, priceCache, cfg, zapLogger)

	holdingBuilder := pipeline.NewPipeline(tokenCatalog, priceOracle, batchClient, zapLogger)

	adapterRegistry := adapters.NewFromConfig(cfg, chainRegistry, executor, batchClient, holdingBuilder, tokenCatalog, zapLogger)
	scanService := service.NewScanService(chainRegistry, adapterRegistry, cfg.Scanner.MaxConcurrentBranches, zapLogger)
	zapLogger.Info("Scan service initialized", zap.Int("maxConcurrentBranches", cfg.Scanner.MaxConcurrentBranches))

	handler := restapi.NewHoldingsHandler(scanService, chainRegistry)
	router := restapi.NewRouter(handler, cfg, zapLogger)

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zapLogger.Info("Server exiting")
}
