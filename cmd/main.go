package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cristianortiz/leilaoEngine/internal/auction/application"
	"github.com/cristianortiz/leilaoEngine/internal/auction/infra/repository/postgres"
	"github.com/cristianortiz/leilaoEngine/internal/shared/config"
	"github.com/cristianortiz/leilaoEngine/internal/shared/db"
	"github.com/cristianortiz/leilaoEngine/internal/shared/db/migrations"
	"github.com/cristianortiz/leilaoEngine/internal/shared/logger"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if err := logger.Init(cfg); err != nil {
		log.Fatal("Failed to configure logger", zap.Error(err))
	}

	log.Info("Starting LeilaoEngine...", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(cfg.Database.DSN()); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	repo := postgres.NewAuctionRepository(pool)
	service := application.NewAuctionService(repo, db.NewTxManager(pool), nil)

	if cfg.SeedDemo {
		if err := seedDemo(ctx, service); err != nil {
			log.Error("Demo seeding failed", zap.Error(err))
			return
		}
	}

	if err := report(ctx, log, repo, service); err != nil {
		log.Error("Report failed", zap.Error(err))
		return
	}
	log.Info("LeilaoEngine finished")
}
