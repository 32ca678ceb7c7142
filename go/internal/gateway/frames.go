package gateway

import (
	"github.com/mcdev12/flashcard/go/internal/models"
)

// FrameType is the type of a server to client frame
type FrameType string

const (
	FrameTypeCards    FrameType = "cards"
	FrameTypeControl  FrameType = "control"
	FrameTypeTimer    FrameType = "timer"
	FrameTypeSpeaker  FrameType = "speaker"
	FrameTypeAudio    FrameType = "audio"
	FrameTypeSnapshot FrameType = "snapshot"
	FrameTypeError    FrameType = "error"
)

// Frame is the envelope for everything the server pushes to a browser
type Frame struct {
	Type FrameType   `json:"type"`
	Data interface{} `json:"data"`
}

// CardsData replaces the card container contents
type CardsData struct {
	Placeholder      bool              `json:"placeholder"`
	PlaceholderAsset string            `json:"placeholder_asset,omitempty"`
	Cards            []models.CardView `json:"cards"`
}

// TimerData is the timer display text
type TimerData struct {
	Text string `json:"text"`
}

// SpeakerData is the speaker toggle icon
type SpeakerData struct {
	Icon models.SpeakerIcon `json:"icon"`
}

type AudioAction string

const (
	AudioActionPlay  AudioAction = "play"
	AudioActionPause AudioAction = "pause"
)

// AudioData tells the browser to play or pause an asset
type AudioData struct {
	Asset  string      `json:"asset"`
	Action AudioAction `json:"action"`
	Loop   bool        `json:"loop"`
}

// ErrorData reports a rejected client message
type ErrorData struct {
	Message string `json:"message"`
}

// ClientMessageType is the type of a client to server message
type ClientMessageType string

const (
	ClientMessageHello        ClientMessageType = "hello"
	ClientMessageResize       ClientMessageType = "resize"
	ClientMessageControlClick ClientMessageType = "control_click"
	ClientMessageCardClick    ClientMessageType = "card_click"
	ClientMessageSpeakerClick ClientMessageType = "speaker_click"
	ClientMessageSnapshot     ClientMessageType = "snapshot"
)

// ClientMessage is anything the browser sends
type ClientMessage struct {
	Type          ClientMessageType `json:"type"`
	ViewportWidth int               `json:"viewport_width,omitempty"`
	Index         *int              `json:"index,omitempty"`
}
