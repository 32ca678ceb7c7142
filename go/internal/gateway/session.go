package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/flashcard/go/internal/catalog"
	"github.com/mcdev12/flashcard/go/internal/game"
	"github.com/mcdev12/flashcard/go/internal/models"
	"github.com/rs/zerolog/log"
)

// SoundAssets are the audio files the browser plays on command
type SoundAssets struct {
	Bell       string `yaml:"bell"`
	Background string `yaml:"background"`
}

func DefaultSoundAssets() SoundAssets {
	return SoundAssets{
		Bell:       "sound/bell.mp3",
		Background: "sound/background.mp3",
	}
}

// FrameSender is where a session's frames go
type FrameSender interface {
	SendFrame(frame Frame) error
}

// Session is one browser tab playing one game
type Session struct {
	ID         uuid.UUID
	controller *game.Controller
	out        FrameSender
}

// NewSession starts an idle game whose display is the given sender
func NewSession(ctx context.Context, cfg game.Config, cat *catalog.Catalog, assets SoundAssets, out FrameSender) *Session {
	id := uuid.New()
	surface := &frameSurface{out: out}
	sounds := game.Sounds{
		Bell:       &frameSound{out: out, asset: assets.Bell},
		Background: &frameSound{out: out, asset: assets.Background, loop: true},
	}

	return &Session{
		ID:         id,
		controller: game.NewController(ctx, id, cfg, cat, surface, sounds),
		out:        out,
	}
}

// HandleMessage applies one client message to the game
func (s *Session) HandleMessage(raw []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	log.Debug().
		Str("session_id", s.ID.String()).
		Str("message_type", string(msg.Type)).
		Msg("received client message")

	switch msg.Type {
	case ClientMessageHello, ClientMessageResize:
		if msg.ViewportWidth <= 0 {
			return fmt.Errorf("%s requires a positive viewport_width", msg.Type)
		}
		s.controller.SetViewportWidth(msg.ViewportWidth)
	case ClientMessageControlClick:
		s.controller.ClickControl()
	case ClientMessageCardClick:
		if msg.Index == nil {
			return fmt.Errorf("card_click requires an index")
		}
		s.controller.ClickCard(*msg.Index)
	case ClientMessageSpeakerClick:
		s.controller.ClickSpeaker()
	case ClientMessageSnapshot:
		return s.out.SendFrame(Frame{Type: FrameTypeSnapshot, Data: s.controller.Snapshot()})
	default:
		log.Warn().
			Str("session_id", s.ID.String()).
			Str("message_type", string(msg.Type)).
			Msg("unknown message type - ignoring")
	}
	return nil
}

func (s *Session) State() models.GameState {
	return s.controller.State()
}

// Close stops the game's timers
func (s *Session) Close() {
	s.controller.Close()
}

// frameSurface renders the game as frames
type frameSurface struct {
	out FrameSender
}

func (f *frameSurface) RenderCards(placeholder bool, cards []models.CardView) {
	data := CardsData{Placeholder: placeholder, Cards: cards}
	if placeholder {
		data.PlaceholderAsset = models.PlaceholderAsset
	}
	f.send(Frame{Type: FrameTypeCards, Data: data})
}

func (f *frameSurface) SetControl(control models.Control) {
	f.send(Frame{Type: FrameTypeControl, Data: control})
}

func (f *frameSurface) SetTimer(text string) {
	f.send(Frame{Type: FrameTypeTimer, Data: TimerData{Text: text}})
}

func (f *frameSurface) SetSpeakerIcon(icon models.SpeakerIcon) {
	f.send(Frame{Type: FrameTypeSpeaker, Data: SpeakerData{Icon: icon}})
}

func (f *frameSurface) send(frame Frame) {
	if err := f.out.SendFrame(frame); err != nil {
		log.Debug().Err(err).Str("frame_type", string(frame.Type)).Msg("dropped frame")
	}
}

// frameSound asks the browser to play an asset
type frameSound struct {
	out   FrameSender
	asset string
	loop  bool
}

func (s *frameSound) Play() error {
	return s.out.SendFrame(Frame{Type: FrameTypeAudio, Data: AudioData{Asset: s.asset, Action: AudioActionPlay, Loop: s.loop}})
}

func (s *frameSound) Pause() error {
	return s.out.SendFrame(Frame{Type: FrameTypeAudio, Data: AudioData{Asset: s.asset, Action: AudioActionPause, Loop: s.loop}})
}
