package world

import (
	"sort"

	"antcolony/shared"
)

// Interactable defines behaviors for objects that ants can occupy
type Interactable interface {
	IsOccupied() bool
	OnEnter(ant *Ant)
	OnExit(ant *Ant)
}

// Cell represents a single cell in the grid. It holds at most one ant,
// a stock of food and at most one signal per identity.
type Cell struct {
	Position shared.Position
	Occupant *Ant
	Food     float64
	signals  map[string]*Signal
}

// NewCell creates an empty cell at pos
func NewCell(pos shared.Position) Cell {
	return Cell{
		Position: pos,
		signals:  make(map[string]*Signal),
	}
}

// IsOccupied checks if this cell is currently occupied
func (c *Cell) IsOccupied() bool {
	return c.Occupant != nil
}

// OnEnter handles an ant entering this cell. Callers must check IsOccupied first.
func (c *Cell) OnEnter(ant *Ant) {
	c.Occupant = ant
}

// OnExit handles an ant leaving this cell
func (c *Cell) OnExit(_ *Ant) {
	c.Occupant = nil
}

// GrabFood removes up to amount food from the cell and returns how much was taken.
// Negative amounts take nothing.
func (c *Cell) GrabFood(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	if c.Food >= amount {
		c.Food -= amount
		return amount
	}
	taken := c.Food
	c.Food = 0
	return taken
}

// AddFood stores more food in the cell. Negative amounts are ignored.
func (c *Cell) AddFood(amount float64) {
	if amount > 0 {
		c.Food += amount
	}
}

// SignalIntensity returns the intensity of the named signal, or 0 if the cell has none
func (c *Cell) SignalIntensity(id string) float64 {
	if s, ok := c.signals[id]; ok {
		return s.Intensity()
	}
	return 0
}

// Signal returns the named signal stored in the cell
func (c *Cell) Signal(id string) (*Signal, bool) {
	s, ok := c.signals[id]
	return s, ok
}

// AddSignal merges signal into the cell's existing signal of the same identity and
// reports whether it did. A cell without that identity is left untouched; use Deposit
// to lay down a new signal.
func (c *Cell) AddSignal(signal *Signal) bool {
	existing, ok := c.signals[signal.ID()]
	if !ok {
		return false
	}
	// identities match by construction of the map key
	_ = existing.Merge(signal)
	return true
}

// Deposit merges signal into the cell, storing a copy of it if the identity is new
func (c *Cell) Deposit(signal *Signal) error {
	if existing, ok := c.signals[signal.ID()]; ok {
		return existing.Merge(signal)
	}
	if c.signals == nil {
		c.signals = make(map[string]*Signal)
	}
	c.signals[signal.ID()] = signal.Clone()
	return nil
}

// RemoveSignal drops the named signal from the cell
func (c *Cell) RemoveSignal(id string) {
	delete(c.signals, id)
}

// Signals returns the cell's signals sorted by identity
func (c *Cell) Signals() []*Signal {
	signals := make([]*Signal, 0, len(c.signals))
	for _, s := range c.signals {
		signals = append(signals, s)
	}
	sort.Slice(signals, func(i, j int) bool {
		return signals[i].ID() < signals[j].ID()
	})
	return signals
}

// DecaySignals fades every signal in the cell by dt, removes the extinguished ones
// and returns their identities in sorted order.
func (c *Cell) DecaySignals(dt float64) []string {
	var extinguished []string
	for id, s := range c.signals {
		if s.DecayStep(dt) {
			extinguished = append(extinguished, id)
			delete(c.signals, id)
		}
	}
	sort.Strings(extinguished)
	return extinguished
}

// IsEmpty reports whether the cell holds no ant, no food and no signal
func (c *Cell) IsEmpty() bool {
	return c.Occupant == nil && c.Food == 0 && len(c.signals) == 0
}
