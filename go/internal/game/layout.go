package game

import "github.com/mcdev12/flashcard/go/internal/models"

// CompactMaxWidth is the widest viewport, in logical pixels, that gets the compact layout.
const CompactMaxWidth = 768

// Layout describes how dealt cards fan out: offset = order*Step + Base along Axis.
type Layout struct {
	Name string      `json:"name"`
	Axis models.Axis `json:"axis"`
	Step int         `json:"step"`
	Base int         `json:"base"`
}

var (
	CompactLayout = Layout{Name: "compact", Axis: models.AxisY, Step: 7, Base: 10}
	WideLayout    = Layout{Name: "wide", Axis: models.AxisX, Step: 120, Base: 30}
)

// LayoutPolicy picks the layout for a viewport width.
type LayoutPolicy func(viewportWidth int) Layout

// DefaultLayout is the policy used when none is configured.
func DefaultLayout(viewportWidth int) Layout {
	return ThresholdLayout(CompactMaxWidth)(viewportWidth)
}

// ThresholdLayout returns a policy that is compact up to and including maxCompact.
func ThresholdLayout(maxCompact int) LayoutPolicy {
	return func(viewportWidth int) Layout {
		if viewportWidth <= maxCompact {
			return CompactLayout
		}
		return WideLayout
	}
}

// Offset is the position of the card revealed at the given order.
func (l Layout) Offset(order int) models.Offset {
	return models.Offset{Axis: l.Axis, Pixels: order*l.Step + l.Base}
}
