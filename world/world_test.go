package world

import (
	"errors"
	"testing"

	"antcolony/shared"
)

func TestNewWorld(t *testing.T) {
	width, height := 5, 3
	w, err := NewWorld(width, height)
	if err != nil {
		t.Fatalf("NewWorld returned error: %v", err)
	}

	if w.Width != width {
		t.Errorf("Expected grid width %d, got %d", width, w.Width)
	}
	if w.Height != height {
		t.Errorf("Expected grid height %d, got %d", height, w.Height)
	}
	if len(w.Ants) != 0 {
		t.Errorf("Expected no ants, got %d", len(w.Ants))
	}

	// Check if cells are initialized
	if len(w.Cells) != height {
		t.Errorf("Expected %d rows of cells, got %d", height, len(w.Cells))
	}
	for y, row := range w.Cells {
		if len(row) != width {
			t.Errorf("Expected %d cells in row %d, got %d", width, y, len(row))
		}
		for x, cell := range row {
			if cell.Position != (shared.Position{X: x, Y: y}) {
				t.Errorf("Cell at (%d, %d) has position %v", x, y, cell.Position)
			}
			if !cell.IsEmpty() {
				t.Errorf("Cell at (%d, %d) is not empty", x, y)
			}
		}
	}
}

func TestNewWorld_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		if _, err := NewWorld(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewWorld(%d, %d): expected ErrInvalidDimensions, got %v", dims[0], dims[1], err)
		}
	}
}

func TestWorld_CellAtWraps(t *testing.T) {
	w, _ := NewWorld(4, 3)
	for y := -5; y <= 5; y++ {
		for x := -6; x <= 6; x++ {
			a := w.CellAt(shared.Position{X: x, Y: y})
			b := w.CellAt(shared.Position{X: x + w.Width, Y: y + w.Height})
			if a != b {
				t.Errorf("Expected (%d, %d) and its wrapped twin to share a cell", x, y)
			}
		}
	}
	if c := w.GetCell(-1, -1); c.Position != (shared.Position{X: 3, Y: 2}) {
		t.Errorf("Expected (-1, -1) to wrap to (3, 2), got %v", c.Position)
	}
}

func TestWorld_CellAtReturnsStoredCell(t *testing.T) {
	w, _ := NewWorld(3, 3)
	w.CellAt(shared.Position{X: 4, Y: 1}).AddFood(2)
	if w.Cells[1][1].Food != 2 {
		t.Errorf("Expected mutation through CellAt to reach the grid, got food %v", w.Cells[1][1].Food)
	}
}

func TestWorld_SignalIntensity(t *testing.T) {
	w, _ := NewWorld(3, 3)
	pos := shared.Position{X: 1, Y: 2}
	if got := w.SignalIntensity(pos, "food"); got != 0.0 {
		t.Errorf("Expected 0.0 for a signal never deposited, got %v", got)
	}
	if _, err := w.Deposit(pos, NewSignal("food", 3, 1)); err != nil {
		t.Fatal(err)
	}
	if got := w.SignalIntensity(shared.Position{X: 4, Y: -1}, "food"); got != 3 {
		t.Errorf("Expected wrapped lookup to find intensity 3, got %v", got)
	}
}

func TestWorld_SignalGradient(t *testing.T) {
	w, _ := NewWorld(5, 5)
	if _, err := w.Deposit(shared.Position{X: 2, Y: 2}, NewSignal("food", 10, 1)); err != nil {
		t.Fatal(err)
	}

	if g := w.SignalGradient(shared.Position{X: 2, Y: 2}, 1, "food"); !g.IsZero() {
		t.Errorf("Expected zero gradient at the source, got %v", g)
	}

	g := w.SignalGradient(shared.Position{X: 1, Y: 2}, 1, "food")
	if g.X <= 0 || g.Y != 0 {
		t.Errorf("Expected gradient pointing toward +x, got %v", g)
	}
	if g != (shared.Vector{X: 10, Y: 0}) {
		t.Errorf("Expected (10, 0), got %v", g)
	}

	if g := w.SignalGradient(shared.Position{X: 2, Y: 1}, 1, "food"); g != (shared.Vector{X: 0, Y: 10}) {
		t.Errorf("Expected gradient pointing down (+y), got %v", g)
	}

	if g := w.SignalGradient(shared.Position{X: 1, Y: 2}, 1, "home"); !g.IsZero() {
		t.Errorf("Expected zero gradient for an absent identity, got %v", g)
	}
}

func TestWorld_SignalGradientWrapsAcrossEdges(t *testing.T) {
	w, _ := NewWorld(5, 5)
	if _, err := w.Deposit(shared.Position{X: 0, Y: 0}, NewSignal("food", 4, 1)); err != nil {
		t.Fatal(err)
	}
	// (0,0) is one step right and one step down from (4,4) across both edges
	g := w.SignalGradient(shared.Position{X: 4, Y: 4}, 1, "food")
	if g != (shared.Vector{X: 4, Y: 4}) {
		t.Errorf("Expected (4, 4), got %v", g)
	}
}

func TestWorld_AddSignalPreservesFirstDepositNoop(t *testing.T) {
	w, _ := NewWorld(3, 3)
	pos := shared.Position{X: 1, Y: 1}
	if w.AddSignal(pos, NewSignal("food", 5, 1)) {
		t.Error("Expected AddSignal on an empty cell to do nothing")
	}
	if w.SignalIntensity(pos, "food") != 0 {
		t.Error("Expected no signal after AddSignal on an empty cell")
	}
}

func TestWorld_DecaySignals(t *testing.T) {
	w, _ := NewWorld(3, 3)
	_, _ = w.Deposit(shared.Position{X: 2, Y: 0}, NewSignal("food", 1, 1))
	_, _ = w.Deposit(shared.Position{X: 0, Y: 1}, NewSignal("home", 5, 1))

	events := w.DecaySignals(1)
	if len(events) != 1 {
		t.Fatalf("Expected 1 extinguished event, got %d", len(events))
	}
	ev := events[0]
	if ev.Type != SignalExtinguishedEvent || ev.Identity != "food" || ev.Position != (shared.Position{X: 2, Y: 0}) {
		t.Errorf("Unexpected event %+v", ev)
	}
	if got := w.SignalIntensity(shared.Position{X: 0, Y: 1}, "home"); got != 4 {
		t.Errorf("Expected home at 4, got %v", got)
	}
	if _, ok := w.CellAt(shared.Position{X: 2, Y: 0}).Signal("food"); ok {
		t.Error("Expected extinguished signal to be removed")
	}
}

func TestWorld_TotalFood(t *testing.T) {
	w, _ := NewWorld(2, 2)
	w.GetCell(0, 0).AddFood(1.5)
	w.GetCell(1, 1).AddFood(2)
	w.GetCell(1, 1).GrabFood(0.5)
	if got := w.TotalFood(); got != 3 {
		t.Errorf("Expected total food 3, got %v", got)
	}
}

func TestWorld_PlaceAnt(t *testing.T) {
	w, _ := NewWorld(3, 3)
	ant := &Ant{ID: 1}
	if err := w.PlaceAnt(ant, shared.Position{X: 4, Y: 4}); err != nil {
		t.Fatalf("PlaceAnt returned error: %v", err)
	}
	if ant.Position != (shared.Position{X: 1, Y: 1}) {
		t.Errorf("Expected ant at wrapped (1, 1), got %v", ant.Position)
	}
	if w.GetCell(1, 1).Occupant != ant {
		t.Error("Expected cell occupant to be the placed ant")
	}

	err := w.PlaceAnt(&Ant{ID: 2}, shared.Position{X: 1, Y: 1})
	if !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Expected ErrCellOccupied, got %v", err)
	}
	if len(w.Ants) != 1 {
		t.Errorf("Expected 1 ant, got %d", len(w.Ants))
	}

	w.RemoveAnt(ant)
	if w.GetCell(1, 1).IsOccupied() {
		t.Error("Expected cell to be empty after RemoveAnt")
	}
	if len(w.Ants) != 0 {
		t.Errorf("Expected no ants, got %d", len(w.Ants))
	}
}

func TestWorld_DepositOverflowKeepsField(t *testing.T) {
	w, _ := NewWorld(3, 3)
	pos := shared.Position{X: 1, Y: 1}
	if _, err := w.Deposit(pos, NewSignal("food", 1e308, 1)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Deposit(pos, NewSignal("food", 1e308, 1)); !errors.Is(err, ErrIntensityOverflow) {
		t.Fatalf("Expected ErrIntensityOverflow, got %v", err)
	}
	if got := w.SignalIntensity(pos, "food"); got != 1e308 {
		t.Errorf("Expected intensity 1e308, got %v", got)
	}
}

func TestWorld_PlaceAntTwiceMovesIt(t *testing.T) {
	w, _ := NewWorld(3, 3)
	ant := &Ant{ID: 7}
	if err := w.PlaceAnt(ant, shared.Position{X: 0, Y: 0}); err != nil {
		t.Fatal(err)
	}
	if err := w.PlaceAnt(ant, shared.Position{X: 2, Y: 2}); err != nil {
		t.Fatalf("Moving ant returned error: %v", err)
	}
	if w.GetCell(0, 0).IsOccupied() {
		t.Error("Expected old cell to be vacated")
	}
	if w.GetCell(2, 2).Occupant != ant {
		t.Error("Expected ant on the new cell")
	}
	if len(w.Ants) != 1 {
		t.Errorf("Expected 1 ant, got %d", len(w.Ants))
	}

	// same cell again is a no-op
	if err := w.PlaceAnt(ant, shared.Position{X: 5, Y: 5}); err != nil {
		t.Errorf("Expected re-placing on own cell to succeed, got %v", err)
	}

	w.RemoveAnt(ant)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if w.GetCell(x, y).IsOccupied() {
				t.Errorf("Expected no occupant left at (%d, %d)", x, y)
			}
		}
	}
	if len(w.Ants) != 0 {
		t.Errorf("Expected no ants, got %d", len(w.Ants))
	}
}

func TestWorld_AntByID(t *testing.T) {
	w, _ := NewWorld(3, 3)
	ant := &Ant{ID: 4}
	_ = w.PlaceAnt(ant, shared.Position{X: 1, Y: 2})
	if got, ok := w.AntByID(4); !ok || got != ant {
		t.Errorf("Expected ant 4, got %v, %v", got, ok)
	}
	if _, ok := w.AntByID(5); ok {
		t.Error("Expected no ant with id 5")
	}
}

func TestWorld_SignalGradientRadiusZero(t *testing.T) {
	w, _ := NewWorld(3, 3)
	_, _ = w.Deposit(shared.Position{X: 1, Y: 1}, NewSignal("food", 5, 1))
	if g := w.SignalGradient(shared.Position{X: 1, Y: 1}, 0, "food"); !g.IsZero() {
		t.Errorf("Expected zero gradient at radius 0, got %v", g)
	}
}
