package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/events"
	"github.com/mcdev12/flashcard/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

type fakeSurface struct {
	mu           sync.Mutex
	renders      [][]models.CardView
	placeholders []bool
	controls     []models.Control
	timers       []string
	icons        []models.SpeakerIcon
}

func (f *fakeSurface) RenderCards(placeholder bool, cards []models.CardView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, cards)
	f.placeholders = append(f.placeholders, placeholder)
}

func (f *fakeSurface) SetControl(control models.Control) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controls = append(f.controls, control)
}

func (f *fakeSurface) SetTimer(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timers = append(f.timers, text)
}

func (f *fakeSurface) SetSpeakerIcon(icon models.SpeakerIcon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.icons = append(f.icons, icon)
}

func (f *fakeSurface) controlList() []models.Control {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Control(nil), f.controls...)
}

func (f *fakeSurface) timerList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.timers...)
}

func (f *fakeSurface) iconList() []models.SpeakerIcon {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SpeakerIcon(nil), f.icons...)
}

func (f *fakeSurface) lastRender() []models.CardView {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.renders) == 0 {
		return nil
	}
	return f.renders[len(f.renders)-1]
}

type fakeSound struct {
	mu     sync.Mutex
	plays  int
	pauses int
	err    error
}

func (s *fakeSound) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays++
	return s.err
}

func (s *fakeSound) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pauses++
	return s.err
}

func (s *fakeSound) playCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plays
}

func (s *fakeSound) pauseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pauses
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []events.EventType
}

func (r *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, event.EventType)
	return errors.New("bus unavailable")
}

func (r *recordingPublisher) list() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.EventType(nil), r.types...)
}

// identityShuffler keeps catalog order so tests can predict the deal.
type identityShuffler struct{}

func (identityShuffler) Shuffle(pairs []models.CardPair) []models.CardPair {
	return append([]models.CardPair(nil), pairs...)
}

type harness struct {
	ctrl      *Controller
	clock     fakeClock
	surface   *fakeSurface
	bell      *fakeSound
	music     *fakeSound
	publisher *recordingPublisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		clock:     clockwork.NewFakeClock(),
		surface:   &fakeSurface{},
		bell:      &fakeSound{},
		music:     &fakeSound{},
		publisher: &recordingPublisher{},
	}

	cfg := DefaultConfig()
	cfg.Clock = h.clock
	cfg.Shuffler = identityShuffler{}
	cfg.Publisher = h.publisher

	h.ctrl = NewController(context.Background(), uuid.New(), cfg, catalog.Default(), h.surface, Sounds{Bell: h.bell, Background: h.music})
	t.Cleanup(h.ctrl.Close)
	return h
}

// step advances the clock by d and waits for the tick it triggers to land.
func (h *harness) step(t *testing.T, d time.Duration, landed func(models.Snapshot) bool) {
	t.Helper()
	h.clock.Advance(d)
	require.Eventually(t, func() bool { return landed(h.ctrl.Snapshot()) }, time.Second, time.Millisecond)
}

func visibleCount(s models.Snapshot) int {
	n := 0
	for _, c := range s.Cards {
		if c.Visible {
			n++
		}
	}
	return n
}

func (h *harness) reveal(t *testing.T) {
	t.Helper()
	for i := 1; i <= RoundSize; i++ {
		want := i
		h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == want })
	}
	h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return s.State == models.GameStatePlaying })
}

func (h *harness) countdown(t *testing.T) {
	t.Helper()
	for remaining := DefaultDurationSeconds - 1; remaining >= 0; remaining-- {
		want := remaining
		h.step(t, DefaultCountdownInterval, func(s models.Snapshot) bool { return s.RemainingSeconds == want })
	}
	require.Eventually(t, func() bool { return h.ctrl.State() == models.GameStateTimeUp }, time.Second, time.Millisecond)
}

func (h *harness) teardown(t *testing.T) {
	t.Helper()
	for i := RoundSize - 1; i >= 0; i-- {
		want := i
		h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == want })
	}
	h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return s.State == models.GameStateIdle })
}

func TestController_InitialState(t *testing.T) {
	h := newHarness(t)

	s := h.ctrl.Snapshot()
	assert.Equal(t, models.GameStateIdle, s.State)
	assert.False(t, s.GameStarted)
	assert.Equal(t, models.Control{Label: models.LabelStart, Enabled: true}, s.Control)
	assert.True(t, s.Placeholder)
	assert.Empty(t, s.Cards)
	assert.Equal(t, models.IconUnmuted, s.SpeakerIcon)
}

func TestController_RoundSetup(t *testing.T) {
	h := newHarness(t)

	require.True(t, h.ctrl.ClickControl())

	s := h.ctrl.Snapshot()
	assert.Equal(t, models.GameStateRevealing, s.State)
	assert.True(t, s.GameStarted)
	assert.Equal(t, models.Control{Label: models.LabelStart, Enabled: false}, s.Control)
	require.Len(t, s.Cards, RoundSize)
	for i, c := range s.Cards {
		assert.False(t, c.Visible)
		assert.False(t, c.Flipped)
		assert.Equal(t, catalog.Default().Pairs()[i], c.Pair)
	}
	assert.True(t, s.Placeholder)
	assert.Equal(t, []events.EventType{events.EventTypeRoundStarted}, h.publisher.list())
}

func TestController_RevealSequence_Wide(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetViewportWidth(1280)
	require.True(t, h.ctrl.ClickControl())

	for i := 1; i <= RoundSize; i++ {
		want := i
		h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == want })
		assert.Empty(t, h.surface.timerList(), "countdown started before the deal finished")
	}

	cards := h.ctrl.Snapshot().Cards
	for i, c := range cards {
		assert.True(t, c.Visible)
		assert.Equal(t, models.AxisX, c.Offset.Axis)
		assert.Equal(t, i*120+30, c.Offset.Pixels)
		if i > 0 {
			assert.Greater(t, c.Offset.Pixels, cards[i-1].Offset.Pixels)
		}
	}

	h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return s.State == models.GameStatePlaying })
	assert.Equal(t, []string{FormatTime(DefaultDurationSeconds)}, h.surface.timerList())

	// the stagger ticker is gone: more time before the first countdown tick changes nothing
	h.clock.Advance(DefaultStaggerInterval - time.Millisecond)
	assert.Never(t, func() bool { return len(h.surface.timerList()) != 1 }, 30*time.Millisecond, 5*time.Millisecond)
}

func TestController_RevealSequence_Compact(t *testing.T) {
	h := newHarness(t)
	h.ctrl.SetViewportWidth(768)
	require.True(t, h.ctrl.ClickControl())

	for i := 1; i <= RoundSize; i++ {
		want := i
		h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == want })
	}

	for i, c := range h.ctrl.Snapshot().Cards {
		assert.Equal(t, models.Offset{Axis: models.AxisY, Pixels: i*7 + 10}, c.Offset)
	}
}

func TestController_Countdown(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())
	h.reveal(t)
	h.countdown(t)

	want := make([]string, 0, DefaultDurationSeconds+1)
	for s := DefaultDurationSeconds; s >= 0; s-- {
		want = append(want, FormatTime(s))
	}
	assert.Equal(t, want, h.surface.timerList())
	assert.Equal(t, 1, h.bell.playCount())

	s := h.ctrl.Snapshot()
	assert.Equal(t, 0, s.RemainingSeconds)
	assert.Equal(t, models.Control{Label: models.LabelReset, Enabled: true}, s.Control)

	// the countdown stopped at zero
	h.clock.Advance(5 * DefaultCountdownInterval)
	assert.Never(t, func() bool { return len(h.surface.timerList()) != len(want) }, 30*time.Millisecond, 5*time.Millisecond)
	assert.Equal(t, 1, h.bell.playCount())
}

func TestController_BellFailureDoesNotStopRound(t *testing.T) {
	h := newHarness(t)
	h.bell.err = errors.New("autoplay blocked")

	require.True(t, h.ctrl.ClickControl())
	h.reveal(t)
	h.countdown(t)

	assert.Equal(t, models.Control{Label: models.LabelReset, Enabled: true}, h.ctrl.Snapshot().Control)
}

func TestController_DisabledClicksAreIgnored(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())

	assert.False(t, h.ctrl.ClickControl())
	assert.Equal(t, models.GameStateRevealing, h.ctrl.State())

	h.reveal(t)
	assert.False(t, h.ctrl.ClickControl())
	assert.Equal(t, models.GameStatePlaying, h.ctrl.State())

	h.countdown(t)
	require.True(t, h.ctrl.ClickControl())
	assert.Equal(t, models.GameStateResetting, h.ctrl.State())

	assert.False(t, h.ctrl.ClickControl())
	assert.Equal(t, models.GameStateResetting, h.ctrl.State())
}

func TestController_CardFlipGating(t *testing.T) {
	h := newHarness(t)

	assert.False(t, h.ctrl.ClickCard(0), "no round on the table")

	require.True(t, h.ctrl.ClickControl())
	h.reveal(t)
	assert.False(t, h.ctrl.ClickCard(0), "control disabled while playing")

	h.countdown(t)
	assert.True(t, h.ctrl.ClickCard(2))
	assert.False(t, h.ctrl.ClickCard(RoundSize))
	assert.False(t, h.ctrl.ClickCard(-1))

	s := h.ctrl.Snapshot()
	assert.True(t, s.Cards[2].Flipped)
	assert.Equal(t, models.GameStateTimeUp, s.State)
	assert.True(t, h.surface.lastRender()[2].Flipped)

	assert.True(t, h.ctrl.ClickCard(2))
	assert.False(t, h.ctrl.Snapshot().Cards[2].Flipped)
}

func TestController_FullRoundTrip(t *testing.T) {
	h := newHarness(t)

	require.True(t, h.ctrl.ClickControl())
	h.reveal(t)
	h.countdown(t)
	require.True(t, h.ctrl.ClickCard(1))

	require.True(t, h.ctrl.ClickControl())
	h.teardown(t)

	s := h.ctrl.Snapshot()
	assert.Equal(t, models.GameStateIdle, s.State)
	assert.False(t, s.GameStarted)
	assert.True(t, s.Placeholder)
	assert.Empty(t, s.Cards)

	assert.Equal(t, []models.Control{
		{Label: models.LabelStart, Enabled: true},
		{Label: models.LabelStart, Enabled: false},
		{Label: models.LabelReset, Enabled: true},
		{Label: models.LabelReset, Enabled: false},
		{Label: models.LabelStart, Enabled: true},
	}, h.surface.controlList())

	assert.Equal(t, []events.EventType{
		events.EventTypeRoundStarted,
		events.EventTypeRevealCompleted,
		events.EventTypeTimeUp,
		events.EventTypeRoundReset,
	}, h.publisher.list())

	// a second round deals fresh cards
	require.True(t, h.ctrl.ClickControl())
	assert.Len(t, h.ctrl.Snapshot().Cards, RoundSize)
}

func TestController_TeardownClearsOffsets(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())
	h.reveal(t)
	h.countdown(t)
	require.True(t, h.ctrl.ClickControl())

	h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == RoundSize-1 })

	cards := h.ctrl.Snapshot().Cards
	assert.False(t, cards[0].Visible)
	assert.Equal(t, models.ClearedOffset, cards[0].Offset)
	assert.True(t, cards[1].Visible)
}

func TestController_StaleTickIgnored(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())

	h.ctrl.onRevealTick(&periodic{})
	h.ctrl.onCountdownTick(&periodic{})
	h.ctrl.onTeardownTick(&periodic{})

	s := h.ctrl.Snapshot()
	assert.Equal(t, 0, visibleCount(s))
	assert.Equal(t, models.GameStateRevealing, s.State)
}

func TestController_CloseStopsSequences(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())
	h.step(t, DefaultStaggerInterval, func(s models.Snapshot) bool { return visibleCount(s) == 1 })

	h.ctrl.Close()
	h.clock.Advance(10 * DefaultStaggerInterval)

	assert.Never(t, func() bool { return visibleCount(h.ctrl.Snapshot()) != 1 }, 30*time.Millisecond, 5*time.Millisecond)
}

func TestController_SpeakerIndependentOfGame(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.ClickControl())

	assert.Equal(t, models.IconMuted, h.ctrl.ClickSpeaker())
	assert.Equal(t, models.IconMuted, h.ctrl.Snapshot().SpeakerIcon)
	assert.Equal(t, models.IconUnmuted, h.ctrl.ClickSpeaker())
	assert.Equal(t, 1, h.music.playCount())
	assert.Equal(t, models.GameStateRevealing, h.ctrl.State())
}
