// Package texture holds the static texture-atlas offset tables of the engine
// models and resolves per-part UV rectangles from them.
package texture

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
)

// DefaultAtlasName is the engine model atlas shipped with the mod.
const DefaultAtlasName = "buildcraft_engine_atlas.png"

// ErrMissingTextureOffset is returned when a kind or heat stage has no atlas entry.
var ErrMissingTextureOffset = errors.New("texture: missing texture offset")

// Atlas is the engine texture atlas: one base offset per engine kind and
// one trunk offset per heat stage. Each connection axis uses its own column,
// AxisStride pixels apart.
type Atlas struct {
	Name       string
	Size       core.Size
	AxisStride int
	Base       map[string]core.UV
	Trunk      map[engine.HeatStage]core.UV
}

// DefaultAtlas returns the built-in offset tables.
func DefaultAtlas() Atlas {
	return Atlas{
		Name:       DefaultAtlasName,
		Size:       core.Size{Width: 512, Height: 512},
		AxisStride: 64,
		Base: map[string]core.UV{
			"creative": {X: 320, Y: 96},
			"redstone": {X: 320, Y: 0},
			"stirling": {X: 320, Y: 32},
			"iron":     {X: 320, Y: 64},
		},
		Trunk: map[engine.HeatStage]core.UV{
			engine.Blue:   {X: 64, Y: 0},
			engine.Green:  {X: 64, Y: 32},
			engine.Orange: {X: 64, Y: 64},
			engine.Red:    {X: 64, Y: 96},
			engine.Black:  {X: 64, Y: 128},
		},
	}
}

// Skin returns the render skin path of the atlas.
func (a Atlas) Skin() string {
	return "model/" + a.Name
}

// Validate checks that every listed kind and every heat stage has an offset
// and that each column stays inside the atlas.
func (a Atlas) Validate(kinds []string) error {
	if a.Name == "" {
		return errors.New("texture: atlas has no name")
	}
	if a.Size.Width <= 0 || a.Size.Height <= 0 {
		return fmt.Errorf("texture: invalid atlas size %dx%d", a.Size.Width, a.Size.Height)
	}
	if a.AxisStride < 0 {
		return fmt.Errorf("texture: negative axis stride %d", a.AxisStride)
	}

	for _, kind := range kinds {
		uv, ok := a.Base[kind]
		if !ok {
			return fmt.Errorf("%w: base of engine kind %q", ErrMissingTextureOffset, kind)
		}
		if err := a.checkBounds(uv); err != nil {
			return fmt.Errorf("texture: base of engine kind %q: %w", kind, err)
		}
	}
	for _, stage := range engine.Stages {
		uv, ok := a.Trunk[stage]
		if !ok {
			return fmt.Errorf("%w: trunk stage %v", ErrMissingTextureOffset, stage)
		}
		if err := a.checkBounds(uv); err != nil {
			return fmt.Errorf("texture: trunk stage %v: %w", stage, err)
		}
	}
	return nil
}

// checkBounds verifies the UV of the last axis column lies inside the atlas.
func (a Atlas) checkBounds(uv core.UV) error {
	maxX := uv.X + int(core.AxisZ)*a.AxisStride
	if uv.X < 0 || uv.Y < 0 || maxX >= a.Size.Width || uv.Y >= a.Size.Height {
		return fmt.Errorf("offset (%d,%d) outside %dx%d atlas", uv.X, uv.Y, a.Size.Width, a.Size.Height)
	}
	return nil
}

// Kinds returns the engine kinds that have a base offset, sorted.
func (a Atlas) Kinds() []string {
	kinds := make([]string, 0, len(a.Base))
	for k := range a.Base {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// BaseUV returns the base (and piston) UV of a kind for a connection axis.
func (a Atlas) BaseUV(kind string, axis core.Axis) (core.UV, error) {
	uv, ok := a.Base[kind]
	if !ok {
		return core.UV{}, fmt.Errorf("%w: base of engine kind %q", ErrMissingTextureOffset, kind)
	}
	return a.column(uv, axis), nil
}

// TrunkUV returns the trunk UV of a heat stage for a connection axis.
func (a Atlas) TrunkUV(stage engine.HeatStage, axis core.Axis) (core.UV, error) {
	uv, ok := a.Trunk[stage]
	if !ok {
		return core.UV{}, fmt.Errorf("%w: trunk stage %v", ErrMissingTextureOffset, stage)
	}
	return a.column(uv, axis), nil
}

func (a Atlas) column(uv core.UV, axis core.Axis) core.UV {
	return core.UV{X: uv.X + int(axis)*a.AxisStride, Y: uv.Y}
}
