// Package world implements the toroidal grid of cells and the signal field laid over it.
package world

import (
	"errors"
	"fmt"

	"antcolony/shared"
)

var (
	// ErrInvalidDimensions is returned when a world is created with a non-positive size
	ErrInvalidDimensions = errors.New("world dimensions must be positive")
	// ErrCellOccupied is returned when placing an ant on a cell that already holds one
	ErrCellOccupied = errors.New("cell is occupied")
)

// World represents the 2D toroidal space ants live in. Every lookup wraps around the edges.
type World struct {
	Width  int
	Height int
	Cells  [][]Cell
	Ants   []*Ant
}

// NewWorld creates a world of width x height empty cells
func NewWorld(width, height int) (*World, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidDimensions)
	}

	w := &World{
		Width:  width,
		Height: height,
	}

	w.Cells = make([][]Cell, height)
	for y := 0; y < height; y++ {
		w.Cells[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			w.Cells[y][x] = NewCell(shared.Position{X: x, Y: y})
		}
	}
	return w, nil
}

// Bounds returns the world size as a position, the modulus used for wrapping
func (w *World) Bounds() shared.Position {
	return shared.Position{X: w.Width, Y: w.Height}
}

// Wrap maps any position onto the grid
func (w *World) Wrap(pos shared.Position) shared.Position {
	return pos.Mod(w.Bounds())
}

// CellAt returns the cell at the wrapped position. The returned cell is the stored one.
func (w *World) CellAt(pos shared.Position) *Cell {
	p := w.Wrap(pos)
	return &w.Cells[p.Y][p.X]
}

// GetCell returns the cell at the specified coordinates
func (w *World) GetCell(x, y int) *Cell {
	return w.CellAt(shared.Position{X: x, Y: y})
}

// SignalIntensity returns the intensity of the named signal at pos
func (w *World) SignalIntensity(pos shared.Position, id string) float64 {
	return w.CellAt(pos).SignalIntensity(id)
}

// SignalGradient sums offset*intensity over the (2r+1)^2 square around pos.
// The result points toward higher concentrations of the named signal.
func (w *World) SignalGradient(pos shared.Position, radius int, id string) shared.Vector {
	var gradient shared.Vector
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			offset := shared.Position{X: dx, Y: dy}
			intensity := w.SignalIntensity(pos.Add(offset), id)
			gradient = gradient.Add(offset.Vector().Scale(intensity))
		}
	}
	return gradient
}

// AddSignal merges signal into the matching signal at pos, if there is one
func (w *World) AddSignal(pos shared.Position, signal *Signal) bool {
	return w.CellAt(pos).AddSignal(signal)
}

// Deposit lays signal down at pos, creating it if the cell has none of that identity
func (w *World) Deposit(pos shared.Position, signal *Signal) (SignalEvent, error) {
	cell := w.CellAt(pos)
	if err := cell.Deposit(signal); err != nil {
		return SignalEvent{}, err
	}
	return SignalEvent{Type: SignalDepositedEvent, Position: cell.Position, Identity: signal.ID()}, nil
}

// DecaySignals fades every signal in the world by dt and drops the extinguished ones.
// Cells are visited in row-major order.
func (w *World) DecaySignals(dt float64) []SignalEvent {
	var events []SignalEvent
	for y := range w.Cells {
		for x := range w.Cells[y] {
			cell := &w.Cells[y][x]
			for _, id := range cell.DecaySignals(dt) {
				events = append(events, SignalEvent{
					Type:     SignalExtinguishedEvent,
					Position: cell.Position,
					Identity: id,
				})
			}
		}
	}
	return events
}

// TotalFood returns the food stored across all cells
func (w *World) TotalFood() float64 {
	total := 0.0
	for y := range w.Cells {
		for x := range w.Cells[y] {
			total += w.Cells[y][x].Food
		}
	}
	return total
}

// PlaceAnt puts ant on the cell at pos and registers it with the world. An ant that is
// already placed is moved, vacating its old cell.
func (w *World) PlaceAnt(ant *Ant, pos shared.Position) error {
	cell := w.CellAt(pos)
	if cell.Occupant == ant {
		return nil
	}
	if cell.IsOccupied() {
		return fmt.Errorf("placing ant %d at %v: %w", ant.ID, cell.Position, ErrCellOccupied)
	}

	placed := w.indexOf(ant) >= 0
	if placed {
		if old := w.CellAt(ant.Position); old.Occupant == ant {
			old.OnExit(ant)
		}
	}
	ant.Position = cell.Position
	cell.OnEnter(ant)
	if !placed {
		w.Ants = append(w.Ants, ant)
	}
	return nil
}

// AntByID finds a placed ant by its id
func (w *World) AntByID(id int) (*Ant, bool) {
	for _, a := range w.Ants {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

func (w *World) indexOf(ant *Ant) int {
	for i, a := range w.Ants {
		if a == ant {
			return i
		}
	}
	return -1
}

// RemoveAnt takes ant off the grid and out of the world
func (w *World) RemoveAnt(ant *Ant) {
	cell := w.CellAt(ant.Position)
	if cell.Occupant == ant {
		cell.OnExit(ant)
	}
	if i := w.indexOf(ant); i >= 0 {
		w.Ants = append(w.Ants[:i], w.Ants[i+1:]...)
	}
}
