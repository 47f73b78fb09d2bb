// Package core provides the value types shared by the engine simulation, the
// animation rig and the front ends. It has no external dependencies (especially
// no Bubble Tea) so the simulation stays pure and testable.
package core

import "fmt"

// Axis identifies one of the three world axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Vec3 is a point or offset in model space.
type Vec3 struct {
	X, Y, Z float64
}

// AxisVec returns a vector with v on the given axis and zero elsewhere.
func AxisVec(a Axis, v float64) Vec3 {
	switch a {
	case AxisX:
		return Vec3{X: v}
	case AxisY:
		return Vec3{Y: v}
	case AxisZ:
		return Vec3{Z: v}
	}
	return Vec3{}
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale multiplies every component by k.
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{X: AbsF(v.X), Y: AbsF(v.Y), Z: AbsF(v.Z)}
}

// Component returns the value along the given axis.
func (v Vec3) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	case AxisZ:
		return v.Z
	}
	return 0
}

// BlockPos is an integer block coordinate in the world.
type BlockPos struct {
	X, Y, Z int
}

// Offset returns the neighbouring position reached by an integral offset.
func (p BlockPos) Offset(v Vec3) BlockPos {
	return BlockPos{X: p.X + int(v.X), Y: p.Y + int(v.Y), Z: p.Z + int(v.Z)}
}

// Center returns the center of the block, where animations are anchored.
func (p BlockPos) Center() Vec3 {
	return Vec3{X: float64(p.X) + .5, Y: float64(p.Y) + .5, Z: float64(p.Z) + .5}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Less orders positions by X, then Y, then Z.
func (p BlockPos) Less(o BlockPos) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.Z < o.Z
}

// UV is a pixel offset into a texture atlas.
type UV struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is the pixel size of a texture.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Box is one textured box of a render model.
type Box struct {
	Origin Vec3
	Size   Vec3
	UV     UV
}

// Rect represents an axis-aligned rectangle on a text screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// AbsF returns the absolute value of a float64.
func AbsF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
