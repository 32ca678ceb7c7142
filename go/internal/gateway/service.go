package gateway

import (
	"context"
	"net/http"

	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/game"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

// Service serves games to browsers over WebSocket
type Service struct {
	config            Config
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	cancel            context.CancelFunc
}

// Config holds configuration for the game gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	Game             game.Config
	Catalog          *catalog.Catalog
	Sounds           SoundAssets
	// StaticDir, when set, is served at / for the browser client
	StaticDir string
}

// DefaultConfig returns default configuration for the game gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		Game:             game.DefaultConfig(),
		Catalog:          catalog.Default(),
		Sounds:           DefaultSoundAssets(),
	}
}

// NewService creates a new game gateway service. Games stop when ctx is done.
func NewService(ctx context.Context, config Config) *Service {
	if config.Catalog == nil {
		config.Catalog = catalog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Service{config: config, cancel: cancel}

	s.connectionManager = NewConnectionManager(config.ConnectionConfig, func(conn *Connection) *Session {
		return NewSession(ctx, config.Game, config.Catalog, config.Sounds, conn)
	})
	s.wsHandler = NewWebSocketHandler(s.connectionManager, config.Catalog)
	return s
}

// RegisterRoutes registers the gateway HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})

	if s.config.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.config.StaticDir)))
	}
	log.Info().Msg("game gateway routes registered")
}

// Handler returns the gateway routes wrapped with CORS
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(mux)
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() map[string]interface{} {
	stats := s.connectionManager.GetConnectionStats()
	stats["service"] = "flashcard_gateway"
	stats["status"] = "running"
	return stats
}

// Stop ends every game and closes every connection
func (s *Service) Stop() {
	s.connectionManager.CloseAll()
	s.cancel()
	log.Info().Msg("game gateway service stopped")
}
