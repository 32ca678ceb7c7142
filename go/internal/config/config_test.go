package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/game"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"GAME_PORT", "LOG_LEVEL", "NATS_URL", "NATS_SUBJECT_PREFIX", "GAME_CONFIG", "STATIC_DIR", "GAME_DURATION_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, "flashcard.events", cfg.NATSSubjectPrefix)
	assert.Equal(t, DefaultGameFile(), cfg.Game)

	assert.Equal(t, 4, cfg.Game.Catalog().Len())
}

func TestNewConfigFromEnv_Overrides(t *testing.T) {
	path := writeFile(t, "duration_seconds: 30\nstagger_ms: 250\n")
	t.Setenv("GAME_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("GAME_CONFIG", path)
	t.Setenv("GAME_DURATION_SECONDS", "45")

	cfg, err := NewConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "nats://bus:4222", cfg.NATSURL)
	assert.Equal(t, 45, cfg.Game.DurationSeconds)
	assert.Equal(t, 250, cfg.Game.StaggerMillis)
	assert.Equal(t, 1000, cfg.Game.CountdownMillis)
}

func TestNewConfigFromEnv_BadLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := NewConfigFromEnv()
	assert.Error(t, err)
}

func TestLoadGameFile(t *testing.T) {
	path := writeFile(t, `duration_seconds: 120
countdown_ms: 500
compact_max_width: 600
sounds:
  bell: audio/ding.mp3
  background: audio/loop.mp3
cards:
  - {question: q1.png, answer: a1.png}
  - {question: q2.png, answer: a2.png}
  - {question: q3.png, answer: a3.png}
  - {question: q4.png, answer: a4.png}
`)

	gf, err := LoadGameFile(path)
	require.NoError(t, err)
	assert.Equal(t, "audio/ding.mp3", gf.Sounds.Bell)
	require.NotNil(t, gf.Cards)
	assert.Equal(t, 4, gf.Catalog().Len())
	assert.Equal(t, "q2.png", gf.Catalog().Pairs()[1].Question)

	gc := gf.GameConfig()
	assert.Equal(t, 120, gc.DurationSeconds)
	assert.Equal(t, 500*time.Millisecond, gc.CountdownInterval)
	assert.Equal(t, game.DefaultStaggerInterval, gc.StaggerInterval)
	assert.Equal(t, game.CompactLayout, gc.Layout(600))
	assert.Equal(t, game.WideLayout, gc.Layout(601))
}

func TestLoadGameFile_Errors(t *testing.T) {
	_, err := LoadGameFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	_, err = LoadGameFile(writeFile(t, "duration_seconds: [1"))
	assert.Error(t, err)

	_, err = LoadGameFile(writeFile(t, "duration_seconds: -5"))
	assert.Error(t, err)

	_, err = LoadGameFile(writeFile(t, "cards:\n  - {question: a, answer: b}\n"))
	assert.ErrorIs(t, err, catalog.ErrCatalogTooSmall)
}

func TestLoadGameFile_KeepsDefaultCatalog(t *testing.T) {
	gf, err := LoadGameFile(writeFile(t, "duration_seconds: 15\n"))
	require.NoError(t, err)
	assert.Equal(t, catalog.Default().Pairs(), gf.Catalog().Pairs())
}
