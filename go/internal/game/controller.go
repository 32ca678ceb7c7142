package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/events"
	"github.com/mcdev12/flashcard/go/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDurationSeconds   = 10
	DefaultStaggerInterval   = 500 * time.Millisecond
	DefaultCountdownInterval = time.Second

	// DefaultViewportWidth is assumed until the display reports its width.
	DefaultViewportWidth = 1024
)

// Config holds the timing and layout settings of a game.
type Config struct {
	DurationSeconds   int
	StaggerInterval   time.Duration
	CountdownInterval time.Duration
	Layout            LayoutPolicy

	// Clock defaults to the real clock. Tests pass a clockwork.FakeClock.
	Clock clockwork.Clock
	// Shuffler defaults to a RandomShuffler on the global source.
	Shuffler Shuffler
	// Publisher receives round lifecycle events. Defaults to events.NopPublisher.
	Publisher events.Publisher
}

// DefaultConfig returns the shipped game settings.
func DefaultConfig() Config {
	return Config{
		DurationSeconds:   DefaultDurationSeconds,
		StaggerInterval:   DefaultStaggerInterval,
		CountdownInterval: DefaultCountdownInterval,
		Layout:            DefaultLayout,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DurationSeconds <= 0 {
		c.DurationSeconds = d.DurationSeconds
	}
	if c.StaggerInterval <= 0 {
		c.StaggerInterval = d.StaggerInterval
	}
	if c.CountdownInterval <= 0 {
		c.CountdownInterval = d.CountdownInterval
	}
	if c.Layout == nil {
		c.Layout = d.Layout
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	if c.Shuffler == nil {
		c.Shuffler = NewRandomShuffler(nil)
	}
	if c.Publisher == nil {
		c.Publisher = events.NopPublisher{}
	}
	return c
}

// Controller runs one game: dealing, the countdown and reset. Every method
// and every tick is serialised on mu, so the game behaves as if it ran on a
// single event loop.
type Controller struct {
	sessionID uuid.UUID
	cfg       Config
	pairs     []models.CardPair
	surface   Surface
	bell      Sound
	audio     *AudioToggle

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	state         models.GameState
	gameStarted   bool
	control       models.Control
	placeholder   bool
	cards         []models.CardView
	layout        Layout
	viewportWidth int
	shown         int // cards revealed, or hidden while tearing down
	remaining     int
	timerText     string

	stagger   *periodic
	countdown *periodic
}

// NewController creates an idle game and draws its initial state on surface.
func NewController(ctx context.Context, sessionID uuid.UUID, cfg Config, cat *catalog.Catalog, surface Surface, sounds Sounds) *Controller {
	cfg = cfg.withDefaults()
	if sounds.Bell == nil {
		sounds.Bell = silentSound{}
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		sessionID:     sessionID,
		cfg:           cfg,
		pairs:         cat.Pairs(),
		surface:       surface,
		bell:          sounds.Bell,
		audio:         NewAudioToggle(sounds.Background, surface),
		ctx:           ctx,
		cancel:        cancel,
		state:         models.GameStateIdle,
		control:       models.Control{Label: models.LabelStart, Enabled: true},
		placeholder:   true,
		viewportWidth: DefaultViewportWidth,
	}

	surface.RenderCards(true, nil)
	surface.SetControl(c.control)
	surface.SetSpeakerIcon(models.IconUnmuted)
	return c
}

// ClickControl handles a press of the start/reset control. A press on a
// disabled control does nothing. It reports whether the press was acted on.
func (c *Controller) ClickControl() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.control.Enabled {
		log.Debug().
			Str("session_id", c.sessionID.String()).
			Str("state", c.state.String()).
			Msg("control click ignored while disabled")
		return false
	}

	if c.control.Label == models.LabelReset {
		c.beginReset()
	} else {
		c.beginRound()
	}
	return true
}

// ClickCard flips the card at index. Flips are only accepted while a round is
// on the table and the control is enabled. It reports whether the card flipped.
func (c *Controller) ClickCard(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.gameStarted || !c.control.Enabled {
		return false
	}
	if index < 0 || index >= len(c.cards) || !c.cards[index].Visible {
		return false
	}

	c.cards[index].Flipped = !c.cards[index].Flipped
	c.render()
	return true
}

// ClickSpeaker toggles the background track.
func (c *Controller) ClickSpeaker() models.SpeakerIcon {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.audio.Click()
}

// SetViewportWidth records the display width used to pick the next round's layout.
func (c *Controller) SetViewportWidth(width int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportWidth = width
}

// State returns the current game state.
func (c *Controller) State() models.GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of everything currently displayed.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	icon := models.IconUnmuted
	if c.audio.Playing() {
		icon = models.IconMuted
	}
	return models.Snapshot{
		State:            c.state,
		GameStarted:      c.gameStarted,
		Control:          c.control,
		Placeholder:      c.placeholder,
		Cards:            c.cardsCopy(),
		RemainingSeconds: c.remaining,
		TimerText:        c.timerText,
		SpeakerIcon:      icon,
	}
}

// Close stops any running sequence. The controller is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopStagger()
	c.stopCountdown()
	c.cancel()
}

// beginRound moves Idle to Revealing and starts dealing.
func (c *Controller) beginRound() {
	c.stopStagger()
	c.stopCountdown()

	c.gameStarted = true
	c.setControl(models.Control{Label: models.LabelStart, Enabled: false})

	c.layout = c.cfg.Layout(c.viewportWidth)
	c.cards = BeginRound(c.pairs, c.cfg.Shuffler)
	c.placeholder = true
	c.shown = 0
	c.state = models.GameStateRevealing
	c.render()

	pairs := make([]models.CardPair, len(c.cards))
	for i, card := range c.cards {
		pairs[i] = card.Pair
	}
	c.emit(events.EventTypeRoundStarted, events.RoundStartedPayload{
		Cards:           pairs,
		Layout:          c.layout.Name,
		DurationSeconds: c.cfg.DurationSeconds,
		StartedAt:       c.cfg.Clock.Now(),
	})

	log.Info().
		Str("session_id", c.sessionID.String()).
		Str("layout", c.layout.Name).
		Int("viewport_width", c.viewportWidth).
		Msg("round started")

	c.stagger = startPeriodic(c.ctx, c.cfg.Clock, c.cfg.StaggerInterval, c.onRevealTick)
}

func (c *Controller) onRevealTick(p *periodic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stagger != p {
		return
	}

	if c.shown >= len(c.cards) {
		c.stopStagger()
		c.emit(events.EventTypeRevealCompleted, events.RevealCompletedPayload{
			CardsRevealed: c.shown,
			CompletedAt:   c.cfg.Clock.Now(),
		})
		c.startCountdown()
		return
	}

	card := &c.cards[c.shown]
	card.Visible = true
	card.Offset = c.layout.Offset(c.shown)
	c.shown++
	c.render()
}

// startCountdown moves Revealing to Playing and starts the countdown.
func (c *Controller) startCountdown() {
	c.stopCountdown()

	c.state = models.GameStatePlaying
	c.remaining = c.cfg.DurationSeconds
	c.countdown = startPeriodic(c.ctx, c.cfg.Clock, c.cfg.CountdownInterval, c.onCountdownTick)
	c.publishTime()
}

func (c *Controller) onCountdownTick(p *periodic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.countdown != p {
		return
	}

	c.remaining--
	c.publishTime()
	if c.remaining > 0 {
		return
	}

	c.stopCountdown()
	if err := c.bell.Play(); err != nil {
		log.Debug().Err(err).Str("session_id", c.sessionID.String()).Msg("time-up cue failed")
	}
	c.state = models.GameStateTimeUp
	c.setControl(models.Control{Label: models.LabelReset, Enabled: true})
	c.emit(events.EventTypeTimeUp, events.TimeUpPayload{
		DurationSeconds: c.cfg.DurationSeconds,
		EndedAt:         c.cfg.Clock.Now(),
	})

	log.Info().Str("session_id", c.sessionID.String()).Msg("time up")
}

// beginReset moves TimeUp to Resetting and starts taking cards off the table.
func (c *Controller) beginReset() {
	c.stopStagger()
	c.stopCountdown()

	c.state = models.GameStateResetting
	c.setControl(models.Control{Label: models.LabelReset, Enabled: false})
	c.shown = 0
	c.stagger = startPeriodic(c.ctx, c.cfg.Clock, c.cfg.StaggerInterval, c.onTeardownTick)
}

func (c *Controller) onTeardownTick(p *periodic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stagger != p {
		return
	}

	if c.shown >= len(c.cards) {
		c.stopStagger()
		c.finishReset()
		return
	}

	card := &c.cards[c.shown]
	card.Offset = models.ClearedOffset
	card.Visible = false
	c.shown++
	c.render()
}

// finishReset restores the idle table.
func (c *Controller) finishReset() {
	flipped := 0
	for _, card := range c.cards {
		if card.Flipped {
			flipped++
		}
	}

	c.cards = nil
	c.placeholder = true
	c.shown = 0
	c.gameStarted = false
	c.state = models.GameStateIdle
	c.render()
	c.setControl(models.Control{Label: models.LabelStart, Enabled: true})
	c.emit(events.EventTypeRoundReset, events.RoundResetPayload{
		CardsFlipped: flipped,
		ResetAt:      c.cfg.Clock.Now(),
	})

	log.Info().Str("session_id", c.sessionID.String()).Msg("round reset")
}

func (c *Controller) stopStagger() {
	c.stagger.stop()
	c.stagger = nil
}

func (c *Controller) stopCountdown() {
	c.countdown.stop()
	c.countdown = nil
}

func (c *Controller) setControl(control models.Control) {
	c.control = control
	c.surface.SetControl(control)
}

func (c *Controller) publishTime() {
	c.timerText = FormatTime(c.remaining)
	c.surface.SetTimer(c.timerText)
}

func (c *Controller) render() {
	c.surface.RenderCards(c.placeholder, c.cardsCopy())
}

func (c *Controller) cardsCopy() []models.CardView {
	if c.cards == nil {
		return nil
	}
	cp := make([]models.CardView, len(c.cards))
	copy(cp, c.cards)
	return cp
}

func (c *Controller) emit(eventType events.EventType, payload interface{}) {
	event, err := events.NewEvent(c.sessionID, eventType, c.cfg.Clock.Now(), payload)
	if err != nil {
		log.Error().Err(err).Str("session_id", c.sessionID.String()).Msg("failed to build round event")
		return
	}
	if err := c.cfg.Publisher.Publish(c.ctx, event); err != nil {
		log.Warn().
			Err(err).
			Str("session_id", c.sessionID.String()).
			Str("event_type", string(eventType)).
			Msg("failed to publish round event")
	}
}
