package main // Entry point for the videoclub API server

import (
	"context"

	"github.com/joho/godotenv"

	"videoclub/internal/config"
	"videoclub/internal/database"
	"videoclub/internal/handler"
	"videoclub/internal/logger"
	"videoclub/internal/queue"
	"videoclub/internal/repository"
	"videoclub/internal/router"
	queue_publisher "videoclub/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	rentals := repository.NewRentalRepo(db)

	rentalHandler := handler.NewRentalHandler(rentals, movies)
	rentalHandler.Publish = func(ctx context.Context, ev queue.RentalEvent) error {
		return queue_publisher.PublishRentalEvent(ctx, log, ev)
	}

	e := router.New(cfg, log, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, users, tokens),
		Movies:  handler.NewMovieHandler(movies),
		Rentals: rentalHandler,
	}, rdb)

	// Background audit trail of rental events; reconnects on its own.
	go queue.StartRentalConsumer(log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
