package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/internal/notify"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
	"github.com/Raisondetr3/tasklist-service/internal/service"
	grpcTransport "github.com/Raisondetr3/tasklist-service/internal/transport/grpc"
	httpTransport "github.com/Raisondetr3/tasklist-service/internal/transport/http"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
	"github.com/joho/godotenv"
)

const serviceName = "tasklist-service"

func main() {
	// .env необязателен
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	loggerCfg := logger.Config{
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.FilePath,
		FileName: cfg.Logging.FileName,
	}

	if err := logger.SetupLogger(loggerCfg, serviceName); err != nil {
		panic("Failed to setup logger: " + err.Error())
	}

	logger.LogServiceStart(serviceName, map[string]interface{}{
		"http_port":     cfg.Server.HTTPPort,
		"grpc_port":     cfg.Server.GRPCPort,
		"db_host":       cfg.Database.Host,
		"db_name":       cfg.Database.Name,
		"log_level":     cfg.Logging.Level,
		"slack_channel": cfg.Notify.SlackChannel,
		"slack_enabled": cfg.Notify.SlackToken != "",
	})

	defer logger.LogServiceStop(serviceName, "shutdown")

	ctx := context.Background()

	dbPool, err := repository.ConnectWithRetry(ctx, cfg.Database, 10, 5*time.Second)
	if err != nil {
		slog.Error("Failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := repository.ApplySchema(ctx, dbPool); err != nil {
		slog.Error("Failed to apply schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	healthRepo := repository.NewHealthRepository(dbPool)
	taskRepo := repository.NewTaskRepository(dbPool)
	goalRepo := repository.NewGoalRepository(dbPool)

	dispatcher := notify.NewDispatcher(notify.New(cfg.Notify), cfg.Notify.Timeout)
	resolver := service.NewResolver(taskRepo, goalRepo)

	healthService := service.NewHealthService(healthRepo)
	taskService := service.NewTaskService(taskRepo, resolver, dispatcher)
	goalService := service.NewGoalService(goalRepo, taskRepo, resolver)

	handlers := httpTransport.NewHTTPHandlers(cfg, healthService, taskService, goalService)
	httpServer := httpTransport.NewHTTPServer(cfg, handlers)
	grpcServer := grpcTransport.NewGRPCServer(cfg, taskService)

	var wg sync.WaitGroup

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := httpServer.StartServer(); err != nil {
			slog.Error("HTTP server error", slog.String("error", err.Error()))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		if err := grpcServer.StartServer(); err != nil {
			slog.Error("gRPC server error", slog.String("error", err.Error()))
		}
	}()

	<-quit
	slog.Info("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", slog.String("error", err.Error()))
	}

	if err := grpcServer.Stop(shutdownCtx); err != nil {
		slog.Error("Error stopping gRPC server", slog.String("error", err.Error()))
	}

	slog.Info("Waiting for servers to stop...")
	wg.Wait()

	slog.Info("Waiting for pending notifications...")
	dispatcher.Wait()

	slog.Info("All servers stopped successfully")
}
