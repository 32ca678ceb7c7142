package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/flashcard/go/internal/models"
)

// EventType names a round lifecycle event.
type EventType string

const (
	EventTypeRoundStarted    EventType = "RoundStarted"
	EventTypeRevealCompleted EventType = "RevealCompleted"
	EventTypeTimeUp          EventType = "TimeUp"
	EventTypeRoundReset      EventType = "RoundReset"
)

// Event is the envelope every lifecycle event travels in.
type Event struct {
	EventID   string          `json:"eventId"`
	EventType EventType       `json:"eventType"`
	SessionID string          `json:"sessionId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// RoundStartedPayload is the payload for a RoundStarted event
type RoundStartedPayload struct {
	Cards           []models.CardPair `json:"cards"`
	Layout          string            `json:"layout"`
	DurationSeconds int               `json:"duration_seconds"`
	StartedAt       time.Time         `json:"started_at"`
}

// RevealCompletedPayload is the payload for a RevealCompleted event
type RevealCompletedPayload struct {
	CardsRevealed int       `json:"cards_revealed"`
	CompletedAt   time.Time `json:"completed_at"`
}

// TimeUpPayload is the payload for a TimeUp event
type TimeUpPayload struct {
	DurationSeconds int       `json:"duration_seconds"`
	EndedAt         time.Time `json:"ended_at"`
}

// RoundResetPayload is the payload for a RoundReset event
type RoundResetPayload struct {
	CardsFlipped int       `json:"cards_flipped"`
	ResetAt      time.Time `json:"reset_at"`
}

// NewEvent wraps payload in an envelope.
func NewEvent(sessionID uuid.UUID, eventType EventType, at time.Time, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		SessionID: sessionID.String(),
		Timestamp: at,
		Payload:   data,
	}, nil
}
