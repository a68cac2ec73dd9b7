package shared

import (
	"fmt"
	"math"
)

// Vector is a 2D float vector, used for gradients and other sensed directions
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// AddPosition adds an integer offset to v
func (v Vector) AddPosition(p Position) Vector {
	return Vector{X: v.X + float64(p.X), Y: v.Y + float64(p.Y)}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

func (v Vector) Div(k float64) Vector {
	return Vector{X: v.X / k, Y: v.Y / k}
}

func (v Vector) SqrMagnitude() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.SqrMagnitude())
}

// Move shifts v by a whole-cell offset
func (v Vector) Move(dx, dy int) Vector {
	return v.AddPosition(Position{X: dx, Y: dy})
}

// MoveDir moves v distance units in dir
func (v Vector) MoveDir(dir Direction, distance float64) (Vector, error) {
	offset, err := dir.Offset()
	if err != nil {
		return v, err
	}
	return v.Add(offset.Vector().Scale(distance)), nil
}

// DistanceTo returns the Chebyshev distance between v and o
func (v Vector) DistanceTo(o Vector) float64 {
	return math.Max(math.Abs(v.X-o.X), math.Abs(v.Y-o.Y))
}

// IsZero reports whether both components are exactly zero
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
