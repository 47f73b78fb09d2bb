package rig

import (
	"fmt"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

// yOffset lifts every part to the model origin used by the host.
const yOffset = 31

// Part names the pieces of the engine model.
type Part int

const (
	PartBase Part = iota
	PartTrunk
	PartPiston
)

func (p Part) String() string {
	switch p {
	case PartBase:
		return "base"
	case PartTrunk:
		return "trunk"
	case PartPiston:
		return "piston"
	default:
		return fmt.Sprintf("Part(%d)", int(p))
	}
}

// Layout is the full geometry and UV assignment of one engine model.
type Layout struct {
	Side        int
	Orientation Orientation
	Offset      core.Vec3
	Base        core.Box
	Trunk       core.Box
	Piston      core.Box
	// PistonDirection is the sign of piston travel along the axis.
	PistonDirection int
}

// Box returns the box of a part.
func (l Layout) Box(p Part) core.Box {
	switch p {
	case PartTrunk:
		return l.Trunk
	case PartPiston:
		return l.Piston
	default:
		return l.Base
	}
}

// Center returns the center of a part relative to the block center, in model pixels.
func (l Layout) Center(p Part) core.Vec3 {
	o := l.Box(p).Origin
	return core.Vec3{X: o.X, Y: o.Y - yOffset, Z: o.Z}
}

// LayoutFor computes the model layout of a kind for a connection side and
// heat stage. It is a pure function of its arguments.
func LayoutFor(side int, stage engine.HeatStage, kind string, atlas texture.Atlas) (Layout, error) {
	o, err := Orient(side)
	if err != nil {
		return Layout{}, err
	}
	baseUV, err := atlas.BaseUV(kind, o.Axis)
	if err != nil {
		return Layout{}, err
	}
	trunkUV, err := atlas.TrunkUV(stage, o.Axis)
	if err != nil {
		return Layout{}, err
	}

	c := o.Offset()
	return Layout{
		Side:            side,
		Orientation:     o,
		Offset:          c,
		Base:            baseBox(c, baseUV),
		Trunk:           trunkBox(c, trunkUV),
		Piston:          pistonBox(c, baseUV),
		PistonDirection: -o.Direction,
	}, nil
}

// WithStage returns the layout with the trunk UV switched to another heat stage.
func (l Layout) WithStage(stage engine.HeatStage, atlas texture.Atlas) (Layout, error) {
	uv, err := atlas.TrunkUV(stage, l.Orientation.Axis)
	if err != nil {
		return l, err
	}
	l.Trunk.UV = uv
	return l, nil
}

// The base plate is thin along the connected axis and spans the block across it.
func baseBox(c core.Vec3, uv core.UV) core.Box {
	return core.Box{
		Origin: core.Vec3{X: c.X * 6, Y: yOffset + c.Y*6, Z: c.Z * 6},
		Size:   plateSize(c),
		UV:     uv,
	}
}

// The trunk is long along the connected axis and narrow across it.
func trunkBox(c core.Vec3, uv core.UV) core.Box {
	a := c.Abs()
	return core.Box{
		Origin: core.Vec3{X: -c.X * .1, Y: yOffset - c.Y*.1, Z: -c.Z * .1},
		Size:   core.Vec3{X: 8 + 8*a.X, Y: 8 + 8*a.Y, Z: 8 + 8*a.Z},
		UV:     uv,
	}
}

func pistonBox(c core.Vec3, uv core.UV) core.Box {
	return core.Box{
		Origin: core.Vec3{X: c.X * 2, Y: yOffset + c.Y*2, Z: c.Z * 2},
		Size:   plateSize(c),
		UV:     uv,
	}
}

func plateSize(c core.Vec3) core.Vec3 {
	a := c.Abs()
	return core.Vec3{X: 4 + 12*(1-a.X), Y: 4 + 12*(1-a.Y), Z: 4 + 12*(1-a.Z)}
}
