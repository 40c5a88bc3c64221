package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/poseidon-capital/poseidon-api/docs"
	"github.com/poseidon-capital/poseidon-api/internal/api"
	"github.com/poseidon-capital/poseidon-api/internal/infrastructure/config"
	mongodb "github.com/poseidon-capital/poseidon-api/internal/infrastructure/db/mongo"
	redisdb "github.com/poseidon-capital/poseidon-api/internal/infrastructure/db/redis"
	"github.com/poseidon-capital/poseidon-api/internal/infrastructure/oauth"
	"github.com/poseidon-capital/poseidon-api/internal/infrastructure/queue"
	"github.com/poseidon-capital/poseidon-api/pkg/logger"
)

// @title        Poseidon API
// @version      1.0
// @description  Authentication and account administration for the Poseidon trading platform.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureAccountIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// Audit trail: async workers drain to mongo, stopping with ctx.
	auditRepo := mongodb.NewAuditRepository(db)
	dispatcher := queue.NewAuditDispatcher(cfg.Auth.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	provider := oauth.NewGitHubProvider(oauth.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		Timeout:      cfg.OAuth.Timeout,
	})

	e := api.NewRouter(db, rdb, cfg, provider, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("poseidon api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
