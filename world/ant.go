package world

import "antcolony/shared"

// Ant is an agent occupying a cell. Its behaviour is driven from outside the world;
// the world only tracks where it stands.
type Ant struct {
	ID       int
	Position shared.Position
}
