package core

import "testing"

func TestAxisVec(t *testing.T) {
	tests := []struct {
		axis     Axis
		v        float64
		expected Vec3
	}{
		{AxisX, 1, Vec3{X: 1}},
		{AxisY, -1, Vec3{Y: -1}},
		{AxisZ, 2.5, Vec3{Z: 2.5}},
	}

	for _, tc := range tests {
		t.Run(tc.axis.String(), func(t *testing.T) {
			got := AxisVec(tc.axis, tc.v)
			if got != tc.expected {
				t.Errorf("AxisVec(%v, %v) = %v, expected %v", tc.axis, tc.v, got, tc.expected)
			}
			if got.Component(tc.axis) != tc.v {
				t.Errorf("Component(%v) = %v, expected %v", tc.axis, got.Component(tc.axis), tc.v)
			}
		})
	}
}

func TestVec3Arithmetic(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3}

	if got := v.Add(Vec3{X: 1, Y: 1, Z: 1}); got != (Vec3{X: 2, Y: -1, Z: 4}) {
		t.Errorf("Add() = %v", got)
	}
	if got := v.Scale(2); got != (Vec3{X: 2, Y: -4, Z: 6}) {
		t.Errorf("Scale() = %v", got)
	}
	if got := v.Abs(); got != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Abs() = %v", got)
	}
}

func TestBlockPosOffsetAndCenter(t *testing.T) {
	p := BlockPos{X: 3, Y: 4, Z: 5}

	if got := p.Offset(Vec3{Y: 1}); got != (BlockPos{X: 3, Y: 5, Z: 5}) {
		t.Errorf("Offset() = %v, expected (3,5,5)", got)
	}
	if got := p.Offset(Vec3{X: -1}); got != (BlockPos{X: 2, Y: 4, Z: 5}) {
		t.Errorf("Offset() = %v, expected (2,4,5)", got)
	}
	if got := p.Center(); got != (Vec3{X: 3.5, Y: 4.5, Z: 5.5}) {
		t.Errorf("Center() = %v", got)
	}
}

func TestBlockPosLess(t *testing.T) {
	a := BlockPos{X: 0, Y: 1, Z: 2}
	b := BlockPos{X: 0, Y: 1, Z: 3}
	c := BlockPos{X: 1, Y: 0, Z: 0}

	if !a.Less(b) || b.Less(a) {
		t.Error("Less should order by Z when X and Y match")
	}
	if !b.Less(c) {
		t.Error("Less should order by X first")
	}
	if a.Less(a) {
		t.Error("Less should be strict")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d",
				tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if ClampF(150, 100, 100) != 100 {
		t.Error("ClampF should collapse to a degenerate range")
	}
	if ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF should keep in-range values")
	}
	if ClampF(-1, 0, 1) != 0 {
		t.Error("ClampF should raise values below min")
	}
}
