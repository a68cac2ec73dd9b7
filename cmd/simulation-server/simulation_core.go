package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"antcolony/config"
	"antcolony/shared"
	"antcolony/world"
)

var (
	// ErrInvalidRequest is returned for requests that cannot be applied to the field
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownAnt is returned when a request names an ant that is not on the grid
	ErrUnknownAnt = errors.New("unknown ant")
)

// SimulationCore owns the world and serialises every mutation of it. Transports
// (websocket, gRPC) share a single core.
type SimulationCore struct {
	World          *world.World
	TickRate       time.Duration
	DecayStep      float64
	DefaultDecay   float64
	MaxSenseRadius int
	mu             sync.RWMutex
	tickCount      int
	outputFile     *os.File
}

// NewSimulationCore creates a new core simulation engine. An empty OutputFile disables
// the grid dump.
func NewSimulationCore(cfg *config.Config) (*SimulationCore, error) {
	w, err := world.NewWorld(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	core := &SimulationCore{
		World:          w,
		TickRate:       cfg.TickRate(),
		DecayStep:      cfg.DecayStep,
		DefaultDecay:   cfg.DefaultDecay,
		MaxSenseRadius: cfg.MaxSenseRadius,
	}

	if cfg.OutputFile != "" {
		file, err := os.OpenFile(cfg.OutputFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return nil, fmt.Errorf("opening output file %s: %w", cfg.OutputFile, err)
		}
		core.outputFile = file
		log.Printf("Grid output will be written to %s", cfg.OutputFile)
	}

	log.Printf("Simulation core initialized with %dx%d grid", cfg.Width, cfg.Height)
	return core, nil
}

// GetTickCount returns the current tick count
func (s *SimulationCore) GetTickCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickCount
}

// Tick advances the simulation by one step, fading every signal by DecayStep.
// It returns the new tick number and the signals that went out.
func (s *SimulationCore) Tick() (int, []world.SignalEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickCount++
	events := s.World.DecaySignals(s.DecayStep)
	if len(events) > 0 {
		log.Printf("Tick %d: %d signals extinguished", s.tickCount, len(events))
	}
	return s.tickCount, events
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Deposit lays a signal down at the requested position. A request without a decay
// gets DefaultDecay.
func (s *SimulationCore) Deposit(req shared.DepositRequest) (world.SignalEvent, error) {
	if req.Identity == "" {
		return world.SignalEvent{}, fmt.Errorf("%w: empty signal identity", ErrInvalidRequest)
	}
	if req.Intensity < 0 || !finite(req.Intensity) {
		return world.SignalEvent{}, fmt.Errorf("%w: intensity must be finite and non-negative, got %v", ErrInvalidRequest, req.Intensity)
	}
	decay := s.DefaultDecay
	if req.Decay != nil {
		decay = *req.Decay
	}
	if decay < 0 || !finite(decay) {
		return world.SignalEvent{}, fmt.Errorf("%w: decay must be finite and non-negative, got %v", ErrInvalidRequest, decay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.World.Deposit(req.Position, world.NewSignal(req.Identity, req.Intensity, decay))
	if errors.Is(err, world.ErrIntensityOverflow) {
		return ev, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err != nil {
		return ev, err
	}
	log.Printf("Deposited %s (%.3g) at %v", req.Identity, req.Intensity, ev.Position)
	return ev, nil
}

// PlaceFood adds food to the cell at the requested position
func (s *SimulationCore) PlaceFood(req shared.FoodRequest) (shared.FoodResponse, error) {
	if req.Amount < 0 {
		return shared.FoodResponse{}, fmt.Errorf("%w: negative food amount %v", ErrInvalidRequest, req.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cell := s.World.CellAt(req.Position)
	cell.AddFood(req.Amount)
	return shared.FoodResponse{Amount: req.Amount, Remaining: cell.Food}, nil
}

// GrabFood takes up to the requested amount of food from a cell
func (s *SimulationCore) GrabFood(req shared.FoodRequest) (shared.FoodResponse, error) {
	if req.Amount < 0 {
		return shared.FoodResponse{}, fmt.Errorf("%w: negative food amount %v", ErrInvalidRequest, req.Amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cell := s.World.CellAt(req.Position)
	taken := cell.GrabFood(req.Amount)
	return shared.FoodResponse{Amount: taken, Remaining: cell.Food}, nil
}

// SignalGradient senses the named signal around a position. The radius must lie in
// [0, MaxSenseRadius].
func (s *SimulationCore) SignalGradient(req shared.GradientRequest) (shared.Vector, error) {
	if req.Identity == "" {
		return shared.Vector{}, fmt.Errorf("%w: empty signal identity", ErrInvalidRequest)
	}
	if req.Radius < 0 || req.Radius > s.MaxSenseRadius {
		return shared.Vector{}, fmt.Errorf("%w: radius %d outside [0, %d]", ErrInvalidRequest, req.Radius, s.MaxSenseRadius)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.World.SignalGradient(req.Position, req.Radius, req.Identity), nil
}

// PlaceAnt puts the ant with the requested id on the grid, moving it if it is already placed
func (s *SimulationCore) PlaceAnt(req shared.AntRequest) (shared.AntRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ant, ok := s.World.AntByID(req.ID)
	if !ok {
		ant = &world.Ant{ID: req.ID}
	}
	if err := s.World.PlaceAnt(ant, req.Position); err != nil {
		return shared.AntRequest{}, err
	}
	log.Printf("Ant %d placed at %v", ant.ID, ant.Position)
	return shared.AntRequest{ID: ant.ID, Position: ant.Position}, nil
}

// RemoveAnt takes the ant with the requested id off the grid
func (s *SimulationCore) RemoveAnt(req shared.AntRequest) (shared.AntRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ant, ok := s.World.AntByID(req.ID)
	if !ok {
		return shared.AntRequest{}, fmt.Errorf("removing ant %d: %w", req.ID, ErrUnknownAnt)
	}
	s.World.RemoveAnt(ant)
	log.Printf("Ant %d removed from %v", ant.ID, ant.Position)
	return shared.AntRequest{ID: ant.ID, Position: ant.Position}, nil
}

// GetGridState returns the current state of the grid. Empty cells are left out.
func (s *SimulationCore) GetGridState() shared.GridState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := shared.GridState{
		Width:  s.World.Width,
		Height: s.World.Height,
		Tick:   s.tickCount,
		Cells:  []shared.CellState{},
	}
	for y := range s.World.Cells {
		for x := range s.World.Cells[y] {
			cell := &s.World.Cells[y][x]
			if cell.IsEmpty() {
				continue
			}
			cs := shared.CellState{
				Position: cell.Position,
				Food:     cell.Food,
			}
			if cell.Occupant != nil {
				id := cell.Occupant.ID
				cs.Occupant = &id
			}
			for _, sig := range cell.Signals() {
				cs.Signals = append(cs.Signals, shared.SignalState{
					Identity:  sig.ID(),
					Intensity: sig.Intensity(),
					Decay:     sig.DecayRate(),
				})
			}
			state.Cells = append(state.Cells, cs)
		}
	}
	return state
}

// cellGlyph picks the character drawn for a cell in the grid dump
func cellGlyph(cell *world.Cell) string {
	switch {
	case cell.IsOccupied():
		return "A"
	case cell.Food > 0:
		return "F"
	case len(cell.Signals()) > 0:
		return "*"
	default:
		return "."
	}
}

// WriteState renders the grid and the signal listing to out
func (s *SimulationCore) WriteState(out io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := fmt.Fprintf(out, "Tick %d: %s - Current Grid State & Signals:\n", s.tickCount, time.Now().Format(time.RFC3339)); err != nil {
		return err
	}

	var listing []string
	for y := range s.World.Cells {
		row := make([]string, 0, s.World.Width)
		for x := range s.World.Cells[y] {
			cell := &s.World.Cells[y][x]
			row = append(row, cellGlyph(cell))
			for _, sig := range cell.Signals() {
				listing = append(listing, fmt.Sprintf("%v %v", cell.Position, sig))
			}
		}
		if _, err := fmt.Fprintln(out, strings.Join(row, " ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "\nFood: %.3g\nSignals:\n", s.World.TotalFood()); err != nil {
		return err
	}
	for _, line := range listing {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintState overwrites the output file with the current state
func (s *SimulationCore) PrintState() {
	if s.outputFile == nil {
		return
	}

	if _, err := s.outputFile.Seek(0, 0); err != nil {
		log.Printf("Error seeking in output file: %v", err)
		return
	}

	if err := s.outputFile.Truncate(0); err != nil {
		log.Printf("Error truncating output file: %v", err)
		return
	}

	if err := s.WriteState(s.outputFile); err != nil {
		log.Printf("Error writing grid: %v", err)
		return
	}

	if err := s.outputFile.Sync(); err != nil {
		log.Printf("Error syncing output file: %v", err)
	}
}

// Stop gracefully shuts down the simulation core
func (s *SimulationCore) Stop() {
	log.Println("Shutting down simulation core...")

	if s.outputFile != nil {
		log.Printf("Closing output file: %s", s.outputFile.Name())
		if err := s.outputFile.Close(); err != nil {
			log.Printf("Error closing output file: %v", err)
		}
		s.outputFile = nil
	}
}
