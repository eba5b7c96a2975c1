// Command db creates the task and goal tables and exits.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/Raisondetr3/tasklist-service/internal/config"
	"github.com/Raisondetr3/tasklist-service/internal/repository"
	"github.com/Raisondetr3/tasklist-service/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	retries := flag.Int("retries", 5, "connection attempts before giving up")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// вывод в stdout, а не в файл сервиса
	loggerCfg := logger.Config{Level: cfg.Logging.Level}
	if err := logger.SetupLogger(loggerCfg, "tasklist-db"); err != nil {
		panic("Failed to setup logger: " + err.Error())
	}

	ctx := context.Background()

	pool, err := repository.ConnectWithRetry(ctx, cfg.Database, *retries, 2*time.Second)
	if err != nil {
		logger.LogError(ctx, err, "database_initialization")
		os.Exit(1)
	}
	defer pool.Close()

	if err := repository.ApplySchema(ctx, pool); err != nil {
		logger.LogError(ctx, err, "apply_schema")
		pool.Close()
		os.Exit(1)
	}

	if err := repository.NewHealthRepository(pool).HealthCheck(ctx); err != nil {
		logger.LogError(ctx, err, "verify_schema")
		pool.Close()
		os.Exit(1)
	}

	slog.Info("Database is ready",
		slog.String("db_host", cfg.Database.Host),
		slog.String("db_name", cfg.Database.Name))
}
