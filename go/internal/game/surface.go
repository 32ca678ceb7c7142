package game

import "github.com/mcdev12/flashcard/go/internal/models"

// Surface is whatever displays a game: the card container, the start/reset
// control, the timer text and the speaker icon.
type Surface interface {
	// RenderCards replaces the container contents. placeholder reports whether
	// the idle card sits in front of cards.
	RenderCards(placeholder bool, cards []models.CardView)
	SetControl(control models.Control)
	SetTimer(text string)
	SetSpeakerIcon(icon models.SpeakerIcon)
}

// Sound is a playable audio asset. The game only ever commands it.
type Sound interface {
	Play() error
	Pause() error
}

// Sounds are the two assets a game uses.
type Sounds struct {
	Bell       Sound
	Background Sound
}

type silentSound struct{}

func (silentSound) Play() error  { return nil }
func (silentSound) Pause() error { return nil }
