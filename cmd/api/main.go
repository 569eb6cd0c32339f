package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clubpuntos/loyalty-system/internal/api"
	"github.com/clubpuntos/loyalty-system/internal/infrastructure/config"
	mongodb "github.com/clubpuntos/loyalty-system/internal/infrastructure/db/mongo"
	redisdb "github.com/clubpuntos/loyalty-system/internal/infrastructure/db/redis"
	"github.com/clubpuntos/loyalty-system/internal/infrastructure/queue"
	"github.com/clubpuntos/loyalty-system/pkg/logger"
)

// @title           Loyalty System API
// @version         1.0
// @description     Loyalty-card backend: accounts, points ledger, and benefit/prize catalog.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("index creation failed")
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, mongodb.NewAuditRepository(db), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("loyalty API listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("loyalty API stopped")
}
