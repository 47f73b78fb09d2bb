// Package rig builds the multi-part engine model (base, trunk, piston) from a
// connection side and heat stage, and manages the render handles bound to it.
package rig

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/bc-engines/internal/core"
)

// Sides is the number of connection sides.
const Sides = 6

// DefaultSide points the piston up.
const DefaultSide = 1

// ErrInvalidSide is returned for connection sides outside 0..5.
var ErrInvalidSide = errors.New("rig: invalid connection side")

// Orientation is the travel axis of the piston and its sign.
type Orientation struct {
	Axis      core.Axis
	Direction int
}

// directions maps a connection side to its orientation, two sides per axis.
var directions = [Sides]Orientation{
	{Axis: core.AxisY, Direction: -1},
	{Axis: core.AxisY, Direction: 1},
	{Axis: core.AxisZ, Direction: -1},
	{Axis: core.AxisZ, Direction: 1},
	{Axis: core.AxisX, Direction: 1},
	{Axis: core.AxisX, Direction: -1},
}

// Orient looks up the orientation of a connection side.
func Orient(side int) (Orientation, error) {
	if side < 0 || side >= Sides {
		return Orientation{}, fmt.Errorf("%w: %d", ErrInvalidSide, side)
	}
	return directions[side], nil
}

// Offset returns the unit vector toward the connected neighbour.
func (o Orientation) Offset() core.Vec3 {
	return core.AxisVec(o.Axis, float64(o.Direction))
}

func (o Orientation) String() string {
	sign := "+"
	if o.Direction < 0 {
		sign = "-"
	}
	return sign + o.Axis.String()
}

// NextSide returns the side a wrench rotation moves to.
func NextSide(side int) int {
	return (side + 1) % Sides
}
