package memhost

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/host"
)

// Part is one named part of a render model.
type Part struct {
	Boxes []core.Box
	Size  core.Size
}

// Render is an in-memory render model.
type Render struct {
	mu        sync.Mutex
	id        int
	skin      string
	parts     map[string]Part
	refreshes int
}

// ID implements host.RenderHandle.
func (r *Render) ID() int { return r.id }

// Skin returns the skin the render was created with.
func (r *Render) Skin() string { return r.skin }

// SetPart implements host.RenderHandle.
func (r *Render) SetPart(name string, boxes []core.Box, size core.Size) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parts[name] = Part{Boxes: append([]core.Box(nil), boxes...), Size: size}
}

// Refresh implements host.RenderHandle.
func (r *Render) Refresh() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
}

// Part returns a copy of a named part.
func (r *Render) Part(name string) (Part, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.parts[name]
	return p, ok
}

// Refreshes returns how many times the render was refreshed.
func (r *Render) Refreshes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes
}

// Animation is an in-memory animation instance.
type Animation struct {
	mu        sync.Mutex
	owner     *Renderer
	id        int
	pos       core.Vec3
	renderID  int
	loaded    bool
	destroyed int
}

// Describe implements host.Animation.
func (a *Animation) Describe(renderID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderID = renderID
}

// Load implements host.Animation.
func (a *Animation) Load() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loaded = true
}

// SetPosition implements host.Animation.
func (a *Animation) SetPosition(at core.Vec3) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pos = at
}

// Refresh implements host.Animation.
func (a *Animation) Refresh() {}

// Destroy implements host.Animation. Destroying twice is recorded so tests
// can catch double releases.
func (a *Animation) Destroy() {
	a.mu.Lock()
	a.destroyed++
	a.loaded = false
	a.mu.Unlock()
	a.owner.forget(a.id)
}

// Position returns the current world position.
func (a *Animation) Position() core.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

// RenderID returns the described render id.
func (a *Animation) RenderID() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderID
}

// Destroyed returns how many times Destroy was called.
func (a *Animation) Destroyed() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyed
}

// Renderer implements host.Renderer in memory.
type Renderer struct {
	mu      sync.Mutex
	nextID  int
	renders map[int]*Render
	live    map[int]*Animation
}

// NewRenderer creates an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		renders: make(map[int]*Render),
		live:    make(map[int]*Animation),
	}
}

// NewRender implements host.Renderer.
func (r *Renderer) NewRender(skin string) (host.RenderHandle, error) {
	if skin == "" {
		return nil, fmt.Errorf("memhost: render needs a skin")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rd := &Render{id: r.nextID, skin: skin, parts: make(map[string]Part)}
	r.renders[rd.id] = rd
	return rd, nil
}

// NewAnimation implements host.Renderer.
func (r *Renderer) NewAnimation(at core.Vec3) (host.Animation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a := &Animation{owner: r, id: r.nextID, pos: at}
	r.live[a.id] = a
	return a, nil
}

func (r *Renderer) forget(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.live, id)
}

// Render returns a render by id.
func (r *Renderer) Render(id int) (*Render, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rd, ok := r.renders[id]
	return rd, ok
}

// RenderCount returns how many renders were ever created.
func (r *Renderer) RenderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

// LiveAnimations returns the animations not yet destroyed, sorted by id.
func (r *Renderer) LiveAnimations() []*Animation {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*Animation, 0, len(r.live))
	for _, a := range r.live {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].id < result[j].id
	})
	return result
}

var _ host.Renderer = (*Renderer)(nil)
