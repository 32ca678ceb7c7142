package game

import (
	"github.com/mcdev12/flashcard/go/internal/models"
	"github.com/rs/zerolog/log"
)

// AudioToggle drives the background track from the speaker button.
//
// The flag starts false and the first click pauses, so the track only plays
// from the second click onwards. This matches the shipped behaviour and is
// kept until product decides otherwise.
type AudioToggle struct {
	playing bool
	track   Sound
	surface Surface
}

func NewAudioToggle(track Sound, surface Surface) *AudioToggle {
	if track == nil {
		track = silentSound{}
	}
	return &AudioToggle{track: track, surface: surface}
}

// Click flips the toggle and returns the icon now displayed.
func (a *AudioToggle) Click() models.SpeakerIcon {
	var icon models.SpeakerIcon
	if a.playing {
		if err := a.track.Play(); err != nil {
			log.Debug().Err(err).Msg("background track play failed")
		}
		icon = models.IconUnmuted
	} else {
		if err := a.track.Pause(); err != nil {
			log.Debug().Err(err).Msg("background track pause failed")
		}
		icon = models.IconMuted
	}
	a.playing = !a.playing
	a.surface.SetSpeakerIcon(icon)
	return icon
}

// Playing reports the current value of the flag.
func (a *AudioToggle) Playing() bool {
	return a.playing
}
