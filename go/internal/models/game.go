package models

// GameState defines where a controller is in its round.
type GameState int

const (
	GameStateIdle GameState = iota
	GameStateRevealing
	GameStatePlaying
	GameStateTimeUp
	GameStateResetting
)

func (s GameState) String() string {
	switch s {
	case GameStateIdle:
		return "IDLE"
	case GameStateRevealing:
		return "REVEALING"
	case GameStatePlaying:
		return "PLAYING"
	case GameStateTimeUp:
		return "TIME_UP"
	case GameStateResetting:
		return "RESETTING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets the state travel as its name in JSON frames.
func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	LabelStart = "Start"
	LabelReset = "Reset"
)

// Control is the single start/reset button.
type Control struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// SpeakerIcon is the icon on the background music toggle.
type SpeakerIcon string

const (
	// IconMuted invites the user to unmute.
	IconMuted SpeakerIcon = "fa-volume-mute"
	// IconUnmuted invites the user to mute.
	IconUnmuted SpeakerIcon = "fa-volume-up"
)

// Snapshot is the full visible state of one game.
type Snapshot struct {
	State            GameState   `json:"state"`
	GameStarted      bool        `json:"game_started"`
	Control          Control     `json:"control"`
	Placeholder      bool        `json:"placeholder"`
	Cards            []CardView  `json:"cards"`
	RemainingSeconds int         `json:"remaining_seconds"`
	TimerText        string      `json:"timer_text"`
	SpeakerIcon      SpeakerIcon `json:"speaker_icon"`
}
