package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/game"
	"github.com/mcdev12/flashcard/go/internal/gateway"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration.
type Config struct {
	Port              string
	LogLevel          zerolog.Level
	NATSURL           string
	NATSSubjectPrefix string
	GameFile          string
	StaticDir         string
	Game              GameFile
}

// GameFile is the optional YAML file describing the game itself.
type GameFile struct {
	DurationSeconds int                 `yaml:"duration_seconds"`
	StaggerMillis   int                 `yaml:"stagger_ms"`
	CountdownMillis int                 `yaml:"countdown_ms"`
	CompactMaxWidth int                 `yaml:"compact_max_width"`
	Sounds          gateway.SoundAssets `yaml:"sounds"`
	Cards           *catalog.Catalog    `yaml:"cards"`
}

// DefaultGameFile mirrors the shipped game.
func DefaultGameFile() GameFile {
	return GameFile{
		DurationSeconds: game.DefaultDurationSeconds,
		StaggerMillis:   int(game.DefaultStaggerInterval / time.Millisecond),
		CountdownMillis: int(game.DefaultCountdownInterval / time.Millisecond),
		CompactMaxWidth: game.CompactMaxWidth,
		Sounds:          gateway.DefaultSoundAssets(),
		Cards:           catalog.Default(),
	}
}

// NewConfigFromEnv reads the environment (with defaults) and the game file it names.
func NewConfigFromEnv() (Config, error) {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg := Config{
		Port:              getEnv("GAME_PORT", "8080"),
		LogLevel:          level,
		NATSURL:           os.Getenv("NATS_URL"),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "flashcard.events"),
		GameFile:          os.Getenv("GAME_CONFIG"),
		StaticDir:         os.Getenv("STATIC_DIR"),
		Game:              DefaultGameFile(),
	}

	if cfg.GameFile != "" {
		gf, err := LoadGameFile(cfg.GameFile)
		if err != nil {
			return Config{}, err
		}
		cfg.Game = gf
	}

	if d := getEnvAsInt("GAME_DURATION_SECONDS", 0); d > 0 {
		cfg.Game.DurationSeconds = d
	}
	return cfg, nil
}

// LoadGameFile reads a game YAML file. Fields it leaves out keep their defaults.
func LoadGameFile(path string) (GameFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameFile{}, fmt.Errorf("failed to read config file: %w", err)
	}

	gf := DefaultGameFile()
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return GameFile{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if gf.DurationSeconds <= 0 {
		return GameFile{}, fmt.Errorf("duration_seconds must be positive, got %d", gf.DurationSeconds)
	}
	return gf, nil
}

// Catalog returns the configured cards, or the built-in ones if none were set.
func (g GameFile) Catalog() *catalog.Catalog {
	if g.Cards == nil {
		return catalog.Default()
	}
	return g.Cards
}

// GameConfig converts the file into controller settings.
func (g GameFile) GameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.DurationSeconds = g.DurationSeconds
	if g.StaggerMillis > 0 {
		cfg.StaggerInterval = time.Duration(g.StaggerMillis) * time.Millisecond
	}
	if g.CountdownMillis > 0 {
		cfg.CountdownInterval = time.Duration(g.CountdownMillis) * time.Millisecond
	}
	if g.CompactMaxWidth > 0 {
		cfg.Layout = game.ThresholdLayout(g.CompactMaxWidth)
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
