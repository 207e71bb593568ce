// Package components defines ECS components for live entities on the mesh.
package components

import "gonum.org/v1/gonum/spatial/r3"

// Position represents an entity's world position (feet, Z up).
type Position struct {
	X, Y, Z float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// PositionOf converts a vector into a Position component.
func PositionOf(v r3.Vec) Position {
	return Position{X: v.X, Y: v.Y, Z: v.Z}
}

// Combatant holds the team membership of an entity.
type Combatant struct {
	ID    uint32
	Team  int
	Alive bool
}
