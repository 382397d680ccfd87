package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/LavaJover/printshop-order-service/internal/app/background"
	"github.com/LavaJover/printshop-order-service/internal/app/setup"
	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/LavaJover/printshop-order-service/internal/delivery/grpcapi"
	"github.com/LavaJover/printshop-order-service/internal/delivery/http/handlers"
	"github.com/LavaJover/printshop-order-service/internal/delivery/http/server"
	"github.com/LavaJover/printshop-order-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	zlog, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to init dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.Close(); err != nil {
			zlog.Warn("failed to release dependencies", zap.Error(err))
		}
	}()

	uc, err := setup.InitializeUseCases(deps)
	if err != nil {
		zlog.Fatal("failed to init use cases", zap.Error(err))
	}

	router := server.NewRouter(zlog, deps.Registry,
		handlers.NewHealthHandler(deps.Ping),
		handlers.NewCatalogHandler(uc.CatalogUsecase),
		handlers.NewOrderHandler(uc.OrderUsecase),
		handlers.NewPointsHandler(uc.PointsUsecase),
		handlers.NewAdminHandler(uc.CatalogUsecase, uc.PointsUsecase, uc.RetentionUsecase),
	)
	grpcServer := grpcapi.NewServer(zlog.Named("grpc"), deps.Ping)

	tasks := background.NewBackgroundTasks(
		uc.RetentionUsecase,
		uc.PointsUsecase,
		deps.Subscriber,
		cfg.Retention,
		cfg.KafkaService,
		zlog,
	)
	tasks.StartAll(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx, cfg.HTTPServer, router, zlog.Named("http"))
	})
	g.Go(func() error {
		return grpcServer.Serve(gctx, cfg.GRPCServer)
	})

	if err := g.Wait(); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
	}
	stop()
	tasks.Wait()
	zlog.Info("printshop service stopped")
}
