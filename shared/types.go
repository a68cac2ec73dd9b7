// Package shared contains common types and data structures used across the colony simulation.
// It defines grid coordinates and directions, field snapshots, and the request/response
// structures exchanged between the simulation server and its clients.
package shared

import "time"

// SignalState represents one signal stored in a cell
type SignalState struct {
	Identity  string  `json:"identity"`
	Intensity float64 `json:"intensity"`
	Decay     float64 `json:"decay"`
}

// CellState represents the current state of a single non-empty cell
type CellState struct {
	Position Position      `json:"position"`
	Food     float64       `json:"food"`
	Occupant *int          `json:"occupant,omitempty"`
	Signals  []SignalState `json:"signals,omitempty"`
}

// GridState represents the current state of the simulation grid.
// Cells without food, occupant or signals are omitted.
type GridState struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Tick   int         `json:"tick"`
	Cells  []CellState `json:"cells"`
}

// SignalRef names a signal at a position
type SignalRef struct {
	Position Position `json:"position"`
	Identity string   `json:"identity"`
}

// SimulationTickEvent represents a tick of the simulation
type SimulationTickEvent struct {
	TickNumber   int         `json:"tick_number"`
	Timestamp    time.Time   `json:"timestamp"`
	GridState    GridState   `json:"grid_state"`
	Extinguished []SignalRef `json:"extinguished,omitempty"`
}

// DepositRequest asks the server to lay down a signal at a position. A nil Decay picks the
// server default; an explicit 0 deposits a signal that never fades.
type DepositRequest struct {
	Position  Position `json:"position"`
	Identity  string   `json:"identity"`
	Intensity float64  `json:"intensity"`
	Decay     *float64 `json:"decay,omitempty"`
}

// DecayRate returns a pointer to rate, for filling DepositRequest.Decay
func DecayRate(rate float64) *float64 {
	return &rate
}

// AntRequest places, moves or removes an ant. Position is ignored on removal.
type AntRequest struct {
	ID       int      `json:"id"`
	Position Position `json:"position"`
}

// FoodRequest adds food to, or grabs food from, a position
type FoodRequest struct {
	Position Position `json:"position"`
	Amount   float64  `json:"amount"`
}

// FoodResponse reports how much food was actually moved
type FoodResponse struct {
	Amount    float64 `json:"amount"`
	Remaining float64 `json:"remaining"`
}

// GradientRequest asks for the signal gradient around a position
type GradientRequest struct {
	Position Position `json:"position"`
	Radius   int      `json:"radius"`
	Identity string   `json:"identity"`
}

// GradientResponse carries the sensed gradient
type GradientResponse struct {
	Gradient Vector `json:"gradient"`
}

// ClientMessageType defines the type of a message sent by a websocket client
type ClientMessageType string

const (
	MessageDeposit ClientMessageType = "deposit"
	MessageFood    ClientMessageType = "food"
	MessageGrab    ClientMessageType = "grab"

	MessagePlaceAnt  ClientMessageType = "place_ant"
	MessageRemoveAnt ClientMessageType = "remove_ant"
)

// ClientMessage is sent by websocket subscribers to mutate the field
type ClientMessage struct {
	Type    ClientMessageType `json:"type"`
	Deposit *DepositRequest   `json:"deposit,omitempty"`
	Food    *FoodRequest      `json:"food,omitempty"`
	Ant     *AntRequest       `json:"ant,omitempty"`
}

// ServerMessageType defines the type of a message pushed to websocket subscribers
type ServerMessageType string

const (
	MessageTick  ServerMessageType = "tick"
	MessageReply ServerMessageType = "reply"
)

// ServerMessage is either a tick broadcast or the reply to a ClientMessage
type ServerMessage struct {
	Type    ServerMessageType    `json:"type"`
	Tick    *SimulationTickEvent `json:"tick,omitempty"`
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Food    *FoodResponse        `json:"food,omitempty"`
	Ant     *AntRequest          `json:"ant,omitempty"`
}
