package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/diasys/diasys-api/internal/api"
	"github.com/diasys/diasys-api/internal/core/service"
	"github.com/diasys/diasys-api/internal/core/token"
	"github.com/diasys/diasys-api/internal/infrastructure/config"
	mongodb "github.com/diasys/diasys-api/internal/infrastructure/db/mongo"
	redisdb "github.com/diasys/diasys-api/internal/infrastructure/db/redis"
	"github.com/diasys/diasys-api/internal/infrastructure/model"
	"github.com/diasys/diasys-api/internal/infrastructure/queue"
	"github.com/diasys/diasys-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		log.Fatal().Msg("ACCESS_SECRET and REFRESH_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}
	predictionRepo := mongodb.NewPredictionRepository(db)

	// A load failure leaves the adapter unloaded; /predict then fails fast
	// with 503 while the auth surface keeps working.
	predictor := model.Load(cfg.ModelDir, log)

	// --- Core services ---
	accessCodec := token.NewCodec(cfg.AccessSecret, cfg.AccessTokenTTL)
	refreshCodec := token.NewCodec(cfg.RefreshSecret, cfg.RefreshTokenTTL)
	sessions := service.NewSessionService(accountRepo, accessCodec, refreshCodec, log)

	recorder := queue.NewRecorder(0, predictionRepo, log)
	recorder.Start(ctx)

	cache := redisdb.NewPredictionCache(rdb)
	predictions := service.NewPredictionService(predictor, cache, recorder, log)

	// --- HTTP server ---
	e := api.NewRouter(sessions, predictions, predictionRepo, db, rdb, predictor, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
