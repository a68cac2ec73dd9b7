package shared

import (
	"fmt"
	"math"
)

// Position represents an integer coordinate on the grid. The y axis grows downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of p and o
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference p - o
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Mul scales p by an integer factor
func (p Position) Mul(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// MulFloat scales p by a float factor, rounding each component half to even
func (p Position) MulFloat(k float64) Position {
	return Position{
		X: int(math.RoundToEven(float64(p.X) * k)),
		Y: int(math.RoundToEven(float64(p.Y) * k)),
	}
}

// Div divides p by k. The result is not snapped to the grid.
func (p Position) Div(k float64) Vector {
	return Vector{X: float64(p.X) / k, Y: float64(p.Y) / k}
}

// Mod wraps p into [0, bound.X) x [0, bound.Y). Both bounds must be positive.
func (p Position) Mod(bound Position) Position {
	return Position{X: wrap(p.X, bound.X), Y: wrap(p.Y, bound.Y)}
}

func wrap(v, n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("shared: non-positive modulo bound %d", n))
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Move displaces p by dx and dy
func (p Position) Move(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// MoveDir displaces p by distance cells in the given direction
func (p Position) MoveDir(dir Direction, distance int) (Position, error) {
	offset, err := dir.Offset()
	if err != nil {
		return p, err
	}
	return p.Add(offset.Mul(distance)), nil
}

// DistanceTo returns the Chebyshev distance between p and o
func (p Position) DistanceTo(o Position) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// Vector converts p to a float vector
func (p Position) Vector() Vector {
	return Vector{X: float64(p.X), Y: float64(p.Y)}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
