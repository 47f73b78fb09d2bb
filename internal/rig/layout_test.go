package rig

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

func TestOrientTable(t *testing.T) {
	expected := []struct {
		axis      core.Axis
		direction int
	}{
		{core.AxisY, -1},
		{core.AxisY, 1},
		{core.AxisZ, -1},
		{core.AxisZ, 1},
		{core.AxisX, 1},
		{core.AxisX, -1},
	}

	for side, want := range expected {
		o, err := Orient(side)
		if err != nil {
			t.Fatalf("Orient(%d) failed: %v", side, err)
		}
		if o.Axis != want.axis || o.Direction != want.direction {
			t.Errorf("Orient(%d) = %v, expected axis %v direction %d", side, o, want.axis, want.direction)
		}
	}

	for _, side := range []int{-1, 6, 42} {
		if _, err := Orient(side); !errors.Is(err, ErrInvalidSide) {
			t.Errorf("Orient(%d) error = %v, expected ErrInvalidSide", side, err)
		}
	}
}

func TestNextSideCycles(t *testing.T) {
	side := DefaultSide
	seen := map[int]bool{}
	for i := 0; i < Sides; i++ {
		seen[side] = true
		side = NextSide(side)
	}
	if len(seen) != Sides || side != DefaultSide {
		t.Errorf("NextSide should visit all %d sides and wrap, saw %v", Sides, seen)
	}
}

func TestLayoutSideUp(t *testing.T) {
	l, err := LayoutFor(1, engine.Blue, "creative", texture.DefaultAtlas())
	if err != nil {
		t.Fatalf("LayoutFor() failed: %v", err)
	}

	if l.Offset != (core.Vec3{Y: 1}) {
		t.Errorf("Offset = %v, expected {0 1 0}", l.Offset)
	}
	if l.Base.Size != (core.Vec3{X: 16, Y: 4, Z: 16}) {
		t.Errorf("Base.Size = %v, expected {16 4 16}", l.Base.Size)
	}
	if l.Base.Origin != (core.Vec3{X: 0, Y: 37, Z: 0}) {
		t.Errorf("Base.Origin = %v, expected {0 37 0}", l.Base.Origin)
	}
	if l.Trunk.Size != (core.Vec3{X: 8, Y: 16, Z: 8}) {
		t.Errorf("Trunk.Size = %v, expected {8 16 8}", l.Trunk.Size)
	}
	if l.Trunk.Origin != (core.Vec3{X: 0, Y: 30.9, Z: 0}) {
		t.Errorf("Trunk.Origin = %v, expected {0 30.9 0}", l.Trunk.Origin)
	}
	if l.Piston.Origin != (core.Vec3{X: 0, Y: 33, Z: 0}) || l.Piston.Size != l.Base.Size {
		t.Errorf("Piston = %+v", l.Piston)
	}
	if l.PistonDirection != -1 {
		t.Errorf("PistonDirection = %d, expected -1", l.PistonDirection)
	}
	if c := l.Center(PartBase); c != (core.Vec3{Y: 6}) {
		t.Errorf("Center(base) = %v, expected {0 6 0}", c)
	}
}

func TestLayoutShortensConnectedAxis(t *testing.T) {
	atlas := texture.DefaultAtlas()
	for side := 0; side < Sides; side++ {
		l, err := LayoutFor(side, engine.Red, "creative", atlas)
		if err != nil {
			t.Fatalf("LayoutFor(%d) failed: %v", side, err)
		}
		axis := l.Orientation.Axis
		for _, a := range []core.Axis{core.AxisX, core.AxisY, core.AxisZ} {
			base := l.Base.Size.Component(a)
			trunk := l.Trunk.Size.Component(a)
			if a == axis {
				if base != 4 || trunk != 16 {
					t.Errorf("side %d axis %v: base %v trunk %v, expected 4 and 16", side, a, base, trunk)
				}
			} else if base != 16 || trunk != 8 {
				t.Errorf("side %d axis %v: base %v trunk %v, expected 16 and 8", side, a, base, trunk)
			}
		}
	}
}

func TestLayoutIsPure(t *testing.T) {
	atlas := texture.DefaultAtlas()
	for side := 0; side < Sides; side++ {
		for _, stage := range engine.Stages {
			a, errA := LayoutFor(side, stage, "creative", atlas)
			b, errB := LayoutFor(side, stage, "creative", atlas)
			if errA != nil || errB != nil {
				t.Fatalf("LayoutFor(%d, %v) failed: %v %v", side, stage, errA, errB)
			}
			if !reflect.DeepEqual(a, b) {
				t.Errorf("LayoutFor(%d, %v) not deterministic: %+v vs %+v", side, stage, a, b)
			}
		}
	}
}

func TestLayoutUV(t *testing.T) {
	atlas := texture.DefaultAtlas()

	l, err := LayoutFor(4, engine.Orange, "creative", atlas)
	if err != nil {
		t.Fatalf("LayoutFor() failed: %v", err)
	}
	if l.Base.UV != (core.UV{X: 320, Y: 96}) {
		t.Errorf("Base.UV = %v, expected X column of creative base", l.Base.UV)
	}
	if l.Piston.UV != l.Base.UV {
		t.Errorf("Piston.UV = %v, expected base UV %v", l.Piston.UV, l.Base.UV)
	}
	if l.Trunk.UV != (core.UV{X: 64, Y: 64}) {
		t.Errorf("Trunk.UV = %v, expected ORANGE trunk", l.Trunk.UV)
	}

	hot, err := l.WithStage(engine.Red, atlas)
	if err != nil {
		t.Fatalf("WithStage() failed: %v", err)
	}
	if hot.Trunk.UV != (core.UV{X: 64, Y: 96}) || hot.Base != l.Base {
		t.Errorf("WithStage(RED) = %+v", hot)
	}
}

func TestLayoutMissingKind(t *testing.T) {
	_, err := LayoutFor(1, engine.Blue, "custom", texture.DefaultAtlas())
	if !errors.Is(err, texture.ErrMissingTextureOffset) {
		t.Errorf("LayoutFor(custom) error = %v, expected ErrMissingTextureOffset", err)
	}
}
