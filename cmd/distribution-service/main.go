package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/app/background"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/app/setup"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/config"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/grpcapi"
	httpapi "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"google.golang.org/grpc"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	appLogger, err := logger.New(cfg.LogConfig.LogLevel, cfg.LogConfig.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	if cfg.Auth.JWTSecret == "" {
		appLogger.Fatal("auth.jwt_secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	distributionMetrics := metrics.NewDistributionMetrics(reg)

	deps, err := setup.InitializeDependencies(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("failed to init dependencies", "error", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			appLogger.Warn("failed to close dependencies", "error", err)
		}
	}()

	uc, err := setup.InitializeUseCases(deps, distributionMetrics, appLogger)
	if err != nil {
		appLogger.Fatal("failed to init usecases", "error", err)
	}

	// Lead expiry sweep
	tasksDone := background.NewBackgroundTasks(uc.LeadUsecase, cfg.Leads.SweepInterval, appLogger).StartAll(ctx)

	// HTTP server
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:         appLogger,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		AuthMiddleware: middleware.NewAuthMiddleware(appLogger, cfg.Auth.JWTSecret),
		DistributionHandler: handlers.NewDistributionHandler(uc.DistributionUsecase, appLogger, handlers.DistributionHandlerConfig{
			BucketCookie: cfg.Distribution.BucketCookie,
			BucketTTL:    cfg.Distribution.BucketTTL,
			FallbackPath: cfg.Distribution.FallbackPath,
		}),
		LeadHandler: handlers.NewLeadHandler(uc.LeadUsecase, appLogger),
		Gatherer:    reg,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Creating gRPC server
	grpcServer := grpc.NewServer()
	healthServer := grpcapi.Register(grpcServer, grpcapi.NewDistributionHandler(uc.DistributionUsecase, uc.LeadUsecase))

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		appLogger.Fatal("failed to listen", "error", err)
	}

	go func() {
		appLogger.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed", "error", err)
			stop()
		}
	}()
	go func() {
		appLogger.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	healthServer.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("HTTP server shutdown", "error", err)
	}
	grpcServer.GracefulStop()
	<-tasksDone
}
