package models

import "github.com/google/uuid"

// PlaceholderAsset is the image shown on the idle card that sits in front of a round.
const PlaceholderAsset = "images/static_card.png"

// CardPair is a question image and the answer image on its back.
type CardPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Axis is the direction a dealt card is pushed along.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Offset is the positional translation applied to a visible card.
type Offset struct {
	Axis   Axis `json:"axis"`
	Pixels int  `json:"pixels"`
}

// ClearedOffset is what a card is reset to when it is taken off the table.
var ClearedOffset = Offset{Axis: AxisX, Pixels: 0}

// CardView is a card dealt for one round.
type CardView struct {
	ID      uuid.UUID `json:"id"`
	Pair    CardPair  `json:"pair"`
	Visible bool      `json:"visible"`
	Flipped bool      `json:"flipped"`
	Offset  Offset    `json:"offset"`
}

// NewCardView creates a hidden, unflipped card for a pair.
func NewCardView(pair CardPair) CardView {
	return CardView{
		ID:     uuid.New(),
		Pair:   pair,
		Offset: ClearedOffset,
	}
}
