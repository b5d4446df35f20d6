package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"coderr/internal/config"
	"coderr/internal/database"
	"coderr/internal/pkg/logger"
	"coderr/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, database.NewGormLogger(lg, cfg.LogLevel == "debug"))
	if err != nil {
		lg.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	svc := server.NewServices(db, cfg)
	router := server.NewRouter(cfg, svc, lg)

	// Graceful shutdown по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg.HTTPAddr, router, cfg.ShutdownTimeout, lg); err != nil {
		lg.Fatal("http server stopped", zap.Error(err))
	}
	lg.Info("server exited")
}
