package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/gigbook/gigbook/internal/clock"
	"github.com/gigbook/gigbook/internal/config"
	"github.com/gigbook/gigbook/internal/database"
	"github.com/gigbook/gigbook/internal/directory"
	"github.com/gigbook/gigbook/internal/form"
	"github.com/gigbook/gigbook/internal/handler"
	"github.com/gigbook/gigbook/internal/middleware"
	"github.com/gigbook/gigbook/internal/queue"
	"github.com/gigbook/gigbook/internal/repository"
	"github.com/gigbook/gigbook/internal/router"
	"github.com/gigbook/gigbook/internal/service"
	"github.com/gigbook/gigbook/internal/view"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("run migrations")
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, page cache and rate limiting disabled")
	}

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	clk := clock.NewReal()
	queries := directory.NewQueryService(venues, artists, shows, clk)
	mutations := directory.NewMutationService(venues, artists, shows)

	pageCache := middleware.NewPageCache(config.LoadCacheConfig(), rdb)

	dir := handler.NewDirectoryHandler(queries, mutations, form.NewValidator(), handler.NewFlasher(cfg.SessionSecret))
	dir.Events = service.NewListingPublisher(cfg.RabbitURL, log)
	dir.Cache = pageCache

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	e := router.New(router.Deps{
		Cfg:         cfg,
		Dir:         dir,
		Auth:        handler.NewAuthHandler(cfg, users, tokens),
		Cache:       pageCache,
		SearchLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Log:         log,
	})
	e.Renderer = renderer

	if cfg.ConsumerEnabled {
		go queue.StartListingConsumer(cfg.RabbitURL, log)
	}

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
