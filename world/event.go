package world

import "antcolony/shared"

// SignalEventType defines the type of signal event
type SignalEventType int

const (
	SignalDepositedEvent SignalEventType = iota
	SignalExtinguishedEvent
)

func (t SignalEventType) String() string {
	switch t {
	case SignalDepositedEvent:
		return "deposited"
	case SignalExtinguishedEvent:
		return "extinguished"
	default:
		return "unknown"
	}
}

// SignalEvent represents a change to the signal field at a cell
type SignalEvent struct {
	Type     SignalEventType
	Position shared.Position
	Identity string
}

// Ref converts the event to its wire form
func (e SignalEvent) Ref() shared.SignalRef {
	return shared.SignalRef{Position: e.Position, Identity: e.Identity}
}
