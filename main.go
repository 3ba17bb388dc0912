package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cognitonow/beauty-book-next/config"
	"github.com/cognitonow/beauty-book-next/middleware"
	"github.com/cognitonow/beauty-book-next/models"
	"github.com/cognitonow/beauty-book-next/services"
	"github.com/cognitonow/beauty-book-next/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogging(cfg)
	log.Info().Str("env", cfg.GoEnv).Msg("starting beauty-book API server")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := store.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	st := store.New(db)
	if err := st.SeedBadges(context.Background(), models.DefaultBadges()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed badge catalog")
	}

	verifier, err := middleware.NewAuth0Verifier(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up token verifier")
	}

	s3Service, err := services.NewS3Service(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up S3 client")
	}

	router := setupRouter(&application{
		db:       db,
		store:    st,
		verifier: verifier,
		s3:       s3Service,
	})

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// setupLogging configures the global zerolog logger from the configured level.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// requestLogger is the logger handed to the request-log middleware.
func requestLogger() zerolog.Logger {
	return log.Logger
}
