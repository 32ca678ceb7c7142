package game

import (
	"errors"
	"testing"

	"github.com/mcdev12/flashcard/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAudioToggle_PreservesInvertedStart(t *testing.T) {
	track := &fakeSound{}
	surface := &fakeSurface{}
	toggle := NewAudioToggle(track, surface)

	assert.False(t, toggle.Playing())

	// first click pauses even though nothing is playing yet
	assert.Equal(t, models.IconMuted, toggle.Click())
	assert.Equal(t, 0, track.playCount())
	assert.Equal(t, 1, track.pauseCount())
	assert.True(t, toggle.Playing())

	assert.Equal(t, models.IconUnmuted, toggle.Click())
	assert.Equal(t, 1, track.playCount())
	assert.False(t, toggle.Playing())

	assert.Equal(t, []models.SpeakerIcon{models.IconMuted, models.IconUnmuted}, surface.iconList())
}

func TestAudioToggle_SwallowsPlaybackErrors(t *testing.T) {
	track := &fakeSound{err: errors.New("autoplay blocked")}
	toggle := NewAudioToggle(track, &fakeSurface{})

	assert.NotPanics(t, func() {
		toggle.Click()
		toggle.Click()
	})
	assert.False(t, toggle.Playing())
}
