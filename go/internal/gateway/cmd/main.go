package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mcdev12/flashcard/go/internal/config"
	"github.com/mcdev12/flashcard/go/internal/events"
	"github.com/mcdev12/flashcard/go/internal/gateway"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	cat := cfg.Game.Catalog()

	publisher, closePublisher := setupPublisher(cfg)
	defer closePublisher()

	gameCfg := cfg.Game.GameConfig()
	gameCfg.Publisher = publisher

	log.Info().
		Str("port", cfg.Port).
		Int("catalog_size", cat.Len()).
		Int("duration_seconds", gameCfg.DurationSeconds).
		Bool("nats_enabled", cfg.NATSURL != "").
		Str("static_dir", cfg.StaticDir).
		Msg("starting flashcard gateway")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := gateway.NewService(ctx, gateway.Config{
		ConnectionConfig: gateway.DefaultConnectionConfig(),
		Game:             gameCfg,
		Catalog:          cat,
		Sounds:           cfg.Game.Sounds,
		StaticDir:        cfg.StaticDir,
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     h2c.NewHandler(svc.Handler(), &http2.Server{}),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	// hijacked WebSocket connections are not covered by Shutdown
	svc.Stop()
	cancel()

	log.Info().Msg("flashcard gateway shutdown complete")
}

// setupPublisher always logs round events and also sends them to NATS when configured.
func setupPublisher(cfg config.Config) (events.Publisher, func()) {
	logPublisher := events.NewLogPublisher()
	if cfg.NATSURL == "" {
		return logPublisher, func() {}
	}

	natsCfg := events.DefaultNATSConfig()
	natsCfg.URL = cfg.NATSURL
	natsCfg.SubjectPrefix = cfg.NATSSubjectPrefix

	natsPublisher, err := events.NewNATSPublisher(natsCfg)
	if err != nil {
		log.Error().Err(err).Str("nats_url", cfg.NATSURL).Msg("NATS unavailable, round events will only be logged")
		return logPublisher, func() {}
	}

	return events.MultiPublisher{logPublisher, natsPublisher}, func() {
		if err := natsPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to drain NATS connection")
		}
	}
}
