package rig

import (
	"sync"

	"github.com/vovakirdan/bc-engines/internal/host"
)

// Render pool groups.
const (
	GroupBase   = "engine/base"
	GroupPiston = "engine/piston"
)

// Pool recycles render handles by group name. Renders are expensive on real
// hosts; a released handle is handed to the next rig of the same group.
type Pool struct {
	mu      sync.Mutex
	free    map[string][]host.RenderHandle
	created map[string]int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		free:    make(map[string][]host.RenderHandle),
		created: make(map[string]int),
	}
}

// Acquire returns a free handle of the group or creates one with newFn.
func (p *Pool) Acquire(group string, newFn func() (host.RenderHandle, error)) (host.RenderHandle, error) {
	p.mu.Lock()
	if free := p.free[group]; len(free) > 0 {
		h := free[len(free)-1]
		p.free[group] = free[:len(free)-1]
		p.mu.Unlock()
		return h, nil
	}
	p.mu.Unlock()

	h, err := newFn()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.created[group]++
	p.mu.Unlock()
	return h, nil
}

// Release returns a handle to its group.
func (p *Pool) Release(group string, h host.RenderHandle) {
	if h == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free[group] = append(p.free[group], h)
}

// Len returns the number of free handles in a group.
func (p *Pool) Len(group string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free[group])
}

// Created returns how many handles the group has created in total.
func (p *Pool) Created(group string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created[group]
}
