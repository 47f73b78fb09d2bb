package rig

import (
	"fmt"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/host"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

// Render part names as seen by the host.
const (
	partBase   = "base"
	partTrunk  = "trunk"
	partPiston = "piston"
)

// Rig is the animation rig of one engine tile entity. It owns a base render
// (base plate and trunk) and a piston render, each shown by an animation
// anchored at the block center. A rig lives exactly as long as its tile.
type Rig struct {
	pos      core.BlockPos
	kind     string
	atlas    texture.Atlas
	renderer host.Renderer
	pool     *Pool

	baseRender   host.RenderHandle
	pistonRender host.RenderHandle
	base         host.Animation
	piston       host.Animation

	layout    Layout
	stage     engine.HeatStage
	position  float64
	destroyed bool
}

// Options configure a new rig.
type Options struct {
	Pos      core.BlockPos
	Kind     string
	Side     int
	Stage    engine.HeatStage
	Atlas    texture.Atlas
	Renderer host.Renderer
	Pool     *Pool
}

// New builds the rig, acquires its renders and loads both animations.
func New(opts Options) (*Rig, error) {
	layout, err := LayoutFor(opts.Side, opts.Stage, opts.Kind, opts.Atlas)
	if err != nil {
		return nil, err
	}
	if opts.Pool == nil {
		opts.Pool = NewPool()
	}

	r := &Rig{
		pos:      opts.Pos,
		kind:     opts.Kind,
		atlas:    opts.Atlas,
		renderer: opts.Renderer,
		pool:     opts.Pool,
		stage:    opts.Stage,
	}
	if err := r.load(); err != nil {
		r.Destroy()
		return nil, err
	}
	r.apply(layout)
	return r, nil
}

func (r *Rig) load() error {
	newRender := func() (host.RenderHandle, error) {
		return r.renderer.NewRender(r.atlas.Skin())
	}

	var err error
	if r.baseRender, err = r.pool.Acquire(GroupBase, newRender); err != nil {
		return fmt.Errorf("rig: base render: %w", err)
	}
	if r.pistonRender, err = r.pool.Acquire(GroupPiston, newRender); err != nil {
		return fmt.Errorf("rig: piston render: %w", err)
	}

	center := r.pos.Center()
	if r.base, err = r.renderer.NewAnimation(center); err != nil {
		return fmt.Errorf("rig: base animation: %w", err)
	}
	r.base.Describe(r.baseRender.ID())
	r.base.Load()

	if r.piston, err = r.renderer.NewAnimation(center); err != nil {
		return fmt.Errorf("rig: piston animation: %w", err)
	}
	r.piston.Describe(r.pistonRender.ID())
	r.piston.Load()
	return nil
}

// apply pushes a full layout to both renders.
func (r *Rig) apply(l Layout) {
	r.layout = l

	r.baseRender.SetPart(partBase, []core.Box{l.Base}, r.atlas.Size)
	r.baseRender.SetPart(partTrunk, []core.Box{l.Trunk}, r.atlas.Size)
	r.baseRender.Refresh()

	r.pistonRender.SetPart(partPiston, []core.Box{l.Piston}, r.atlas.Size)
	r.pistonRender.Refresh()

	r.movePiston()
}

// Rotate rebuilds every part for a new connection side.
func (r *Rig) Rotate(side int) error {
	if r.destroyed {
		return nil
	}
	l, err := LayoutFor(side, r.stage, r.kind, r.atlas)
	if err != nil {
		return err
	}
	r.apply(l)
	return nil
}

// Update switches the trunk texture when the heat stage changed and moves
// the piston to the given travel position.
func (r *Rig) Update(stage engine.HeatStage, position float64) error {
	if r.destroyed {
		return nil
	}
	if stage != r.stage {
		l, err := r.layout.WithStage(stage, r.atlas)
		if err != nil {
			return err
		}
		r.stage = stage
		r.layout = l
		r.baseRender.SetPart(partTrunk, []core.Box{l.Trunk}, r.atlas.Size)
		r.baseRender.Refresh()
	}
	r.position = position
	r.movePiston()
	return nil
}

func (r *Rig) movePiston() {
	r.piston.SetPosition(r.pos.Center().Add(r.PistonOffset()))
	r.piston.Refresh()
}

// PistonOffset is the piston displacement from the block center.
func (r *Rig) PistonOffset() core.Vec3 {
	return core.AxisVec(r.layout.Orientation.Axis, r.position*float64(r.layout.PistonDirection))
}

// Layout returns the current layout.
func (r *Rig) Layout() Layout {
	return r.layout
}

// Side returns the current connection side.
func (r *Rig) Side() int {
	return r.layout.Side
}

// Stage returns the heat stage the trunk currently shows.
func (r *Rig) Stage() engine.HeatStage {
	return r.stage
}

// Destroyed reports whether Destroy was called.
func (r *Rig) Destroyed() bool {
	return r.destroyed
}

// Destroy unloads both animations and returns the renders to the pool.
// Only the first call has an effect.
func (r *Rig) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true

	if r.base != nil {
		r.base.Destroy()
	}
	if r.piston != nil {
		r.piston.Destroy()
	}
	r.pool.Release(GroupBase, r.baseRender)
	r.pool.Release(GroupPiston, r.pistonRender)
	r.baseRender, r.pistonRender = nil, nil
}
