package rig

import (
	"testing"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/host/memhost"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

func newTestRig(t *testing.T, renderer *memhost.Renderer, pool *Pool) *Rig {
	t.Helper()
	r, err := New(Options{
		Pos:      core.BlockPos{X: 2, Y: 64, Z: -3},
		Kind:     "creative",
		Side:     DefaultSide,
		Stage:    engine.Blue,
		Atlas:    texture.DefaultAtlas(),
		Renderer: renderer,
		Pool:     pool,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return r
}

func TestRigLoadsAnimations(t *testing.T) {
	renderer := memhost.NewRenderer()
	r := newTestRig(t, renderer, NewPool())

	live := renderer.LiveAnimations()
	if len(live) != 2 {
		t.Fatalf("LiveAnimations() = %d, expected base and piston", len(live))
	}

	base, _ := renderer.Render(live[0].RenderID())
	if _, ok := base.Part("base"); !ok {
		t.Error("base render should carry the base part")
	}
	if p, ok := base.Part("trunk"); !ok || p.Boxes[0].UV != (core.UV{X: 128, Y: 0}) {
		t.Errorf("trunk part = %+v, expected BLUE trunk UV in the Y column", p)
	}
	if base.Skin() != "model/"+texture.DefaultAtlasName {
		t.Errorf("Skin() = %q", base.Skin())
	}
	if r.Side() != DefaultSide {
		t.Errorf("Side() = %d, expected %d", r.Side(), DefaultSide)
	}
}

func TestRigUpdateRefreshesTrunkOnlyOnStageChange(t *testing.T) {
	renderer := memhost.NewRenderer()
	r := newTestRig(t, renderer, NewPool())
	base, _ := renderer.Render(renderer.LiveAnimations()[0].RenderID())
	before := base.Refreshes()

	if err := r.Update(engine.Blue, 0.1); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if base.Refreshes() != before {
		t.Error("same stage should not refresh the base render")
	}

	if err := r.Update(engine.Red, 0.2); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if base.Refreshes() != before+1 {
		t.Errorf("Refreshes() = %d, expected %d", base.Refreshes(), before+1)
	}
	if p, _ := base.Part("trunk"); p.Boxes[0].UV != (core.UV{X: 128, Y: 96}) {
		t.Errorf("trunk UV = %v, expected RED in the Y column", p.Boxes[0].UV)
	}
	if r.Stage() != engine.Red {
		t.Errorf("Stage() = %v, expected RED", r.Stage())
	}
}

func TestRigPistonFollowsPosition(t *testing.T) {
	renderer := memhost.NewRenderer()
	r := newTestRig(t, renderer, NewPool())

	if err := r.Update(engine.Blue, 0.25); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	piston := renderer.LiveAnimations()[1]
	want := core.Vec3{X: 2.5, Y: 64.25, Z: -2.5}
	if got := piston.Position(); got != want {
		t.Errorf("piston position = %v, expected %v", got, want)
	}
}

func TestRigRotate(t *testing.T) {
	renderer := memhost.NewRenderer()
	r := newTestRig(t, renderer, NewPool())

	if err := r.Rotate(4); err != nil {
		t.Fatalf("Rotate() failed: %v", err)
	}
	if r.Layout().Orientation.Axis != core.AxisX {
		t.Errorf("axis = %v, expected X", r.Layout().Orientation.Axis)
	}
	if err := r.Rotate(9); err == nil {
		t.Error("Rotate() to an invalid side should fail")
	}
	if r.Side() != 4 {
		t.Errorf("failed rotation should keep side 4, got %d", r.Side())
	}
}

func TestRigDestroyOnce(t *testing.T) {
	renderer := memhost.NewRenderer()
	pool := NewPool()
	r := newTestRig(t, renderer, pool)
	anims := renderer.LiveAnimations()

	r.Destroy()
	r.Destroy()

	for _, a := range anims {
		if a.Destroyed() != 1 {
			t.Errorf("animation destroyed %d times, expected 1", a.Destroyed())
		}
	}
	if pool.Len(GroupBase) != 1 || pool.Len(GroupPiston) != 1 {
		t.Errorf("pool holds %d/%d, expected each render released once",
			pool.Len(GroupBase), pool.Len(GroupPiston))
	}
	if err := r.Update(engine.Red, 1); err != nil {
		t.Errorf("Update() after Destroy should be a no-op, got %v", err)
	}
}

func TestPoolReusesRenders(t *testing.T) {
	renderer := memhost.NewRenderer()
	pool := NewPool()

	first := newTestRig(t, renderer, pool)
	first.Destroy()
	second := newTestRig(t, renderer, pool)
	defer second.Destroy()

	if pool.Created(GroupBase) != 1 || pool.Created(GroupPiston) != 1 {
		t.Errorf("Created() = %d/%d, expected renders to be reused",
			pool.Created(GroupBase), pool.Created(GroupPiston))
	}
	if renderer.RenderCount() != 2 {
		t.Errorf("RenderCount() = %d, expected 2", renderer.RenderCount())
	}
}

func TestNewRejectsMissingTexture(t *testing.T) {
	renderer := memhost.NewRenderer()
	_, err := New(Options{
		Kind:     "custom",
		Side:     1,
		Atlas:    texture.DefaultAtlas(),
		Renderer: renderer,
	})
	if err == nil {
		t.Fatal("New() should fail without a texture offset")
	}
	if len(renderer.LiveAnimations()) != 0 {
		t.Error("failed New() should not leave animations behind")
	}
}
