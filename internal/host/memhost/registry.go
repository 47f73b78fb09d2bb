// Package memhost is an in-memory implementation of the host collaborators,
// used by the harness world, the front ends and tests.
package memhost

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/host"
)

// First numeric ids handed out, mirroring hosts that reserve low ids for vanilla content.
const (
	firstBlockID = 1000
	firstItemID  = 2000
)

// BlockDef is a registered block.
type BlockDef struct {
	ID       int
	StringID string
	Variants []host.BlockVariant
}

// ItemDef is a registered item.
type ItemDef struct {
	ID       int
	StringID string
	Name     string
	Texture  host.ItemTexture
}

// Registry implements the block, item and tile-entity registries.
type Registry struct {
	mu sync.RWMutex

	nextBlock int
	nextItem  int

	blocks     map[string]BlockDef
	blocksByID map[int]string
	items      map[string]ItemDef
	itemsByID  map[int]string
	drops      map[int]host.DropFunc
	uses       map[string]host.UseFunc
	protos     map[int]host.Prototype
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nextBlock:  firstBlockID,
		nextItem:   firstItemID,
		blocks:     make(map[string]BlockDef),
		blocksByID: make(map[int]string),
		items:      make(map[string]ItemDef),
		itemsByID:  make(map[int]string),
		drops:      make(map[int]host.DropFunc),
		uses:       make(map[string]host.UseFunc),
		protos:     make(map[int]host.Prototype),
	}
}

// RegisterBlock implements host.BlockRegistry.
func (r *Registry) RegisterBlock(stringID string, variants []host.BlockVariant) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.blocks[stringID]; exists {
		return 0, fmt.Errorf("memhost: block %q already registered", stringID)
	}
	if len(variants) == 0 {
		return 0, fmt.Errorf("memhost: block %q has no variants", stringID)
	}

	id := r.nextBlock
	r.nextBlock++
	r.blocks[stringID] = BlockDef{ID: id, StringID: stringID, Variants: variants}
	r.blocksByID[id] = stringID
	return id, nil
}

// RegisterDropFunction implements host.BlockRegistry.
func (r *Registry) RegisterDropFunction(id int, fn host.DropFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drops[id] = fn
}

// RegisterItem implements host.ItemRegistry.
func (r *Registry) RegisterItem(stringID, name string, texture host.ItemTexture) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[stringID]; exists {
		return 0, fmt.Errorf("memhost: item %q already registered", stringID)
	}

	id := r.nextItem
	r.nextItem++
	r.items[stringID] = ItemDef{ID: id, StringID: stringID, Name: name, Texture: texture}
	r.itemsByID[id] = stringID
	return id, nil
}

// RegisterUseFunction implements host.ItemRegistry.
func (r *Registry) RegisterUseFunction(stringID string, fn host.UseFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uses[stringID] = fn
}

// RegisterPrototype implements host.TileEntityRegistry.
func (r *Registry) RegisterPrototype(blockID int, proto host.Prototype) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.protos[blockID] = proto
}

// Block returns a registered block by string id.
func (r *Registry) Block(stringID string) (BlockDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blocks[stringID]
	return b, ok
}

// BlockByID returns a registered block by numeric id.
func (r *Registry) BlockByID(id int) (BlockDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.blocksByID[id]
	if !ok {
		return BlockDef{}, false
	}
	return r.blocks[sid], true
}

// Item returns a registered item by string id.
func (r *Registry) Item(stringID string) (ItemDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[stringID]
	return it, ok
}

// Items returns every registered item, sorted by id.
func (r *Registry) Items() []ItemDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]ItemDef, 0, len(r.items))
	for _, it := range r.items {
		result = append(result, it)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Prototype returns the tile-entity prototype bound to a block id.
func (r *Registry) Prototype(blockID int) (host.Prototype, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.protos[blockID]
	return p, ok
}

// Drops runs the drop function of a block, if any.
func (r *Registry) Drops(pos core.BlockPos, block host.BlockInfo) []host.ItemStack {
	r.mu.RLock()
	fn, ok := r.drops[block.ID]
	r.mu.RUnlock()
	if !ok {
		return []host.ItemStack{{ID: block.ID, Count: 1, Data: block.Data}}
	}
	return fn(pos, block)
}

// Use runs the use function registered for an item.
func (r *Registry) Use(stringID string, c host.UseCoords, block host.BlockInfo) error {
	r.mu.RLock()
	fn, ok := r.uses[stringID]
	item, known := r.items[stringID]
	r.mu.RUnlock()

	if !known {
		return fmt.Errorf("memhost: unknown item %q", stringID)
	}
	if !ok {
		return nil
	}
	return fn(c, host.ItemStack{ID: item.ID, Count: 1}, block)
}

var (
	_ host.BlockRegistry      = (*Registry)(nil)
	_ host.ItemRegistry       = (*Registry)(nil)
	_ host.TileEntityRegistry = (*Registry)(nil)
)
