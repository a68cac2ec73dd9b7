package shared

import (
	"errors"
	"fmt"
)

// ErrInvalidDirection is returned when a direction code is outside the known set
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is one of the four grid directions, numbered counter-clockwise from Up
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists every valid direction in code order
var Directions = []Direction{Up, Left, Down, Right}

var directionOffsets = map[Direction]Position{
	Up:    {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
	Down:  {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
}

// Offset returns the unit displacement for d
func (d Direction) Offset() (Position, error) {
	offset, ok := directionOffsets[d]
	if !ok {
		return Position{}, fmt.Errorf("cannot move in direction %d: %w", int(d), ErrInvalidDirection)
	}
	return offset, nil
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Left:
		return "LT"
	case Down:
		return "DW"
	case Right:
		return "RT"
	default:
		return "--"
	}
}
