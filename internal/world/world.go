// Package world is the harness world: it stores blocks, owns tile entities
// and energy sinks, and delivers ticks in a deterministic order.
// A World is not safe for concurrent use; see Loop for shared access.
package world

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/host"
)

// Air is the block id of an empty position.
const Air = host.Air

var (
	// ErrNoBlock is returned when adding a tile entity where no block is set.
	ErrNoBlock = errors.New("world: no block at position")
	// ErrNoPrototype is returned when the block has no tile-entity prototype.
	ErrNoPrototype = errors.New("world: block has no tile entity")
	// ErrTileExists is returned when a position already holds a tile entity.
	ErrTileExists = errors.New("world: tile entity already exists")
)

// Catalog resolves block behaviour registered by content.
type Catalog interface {
	Prototype(blockID int) (host.Prototype, bool)
	Drops(pos core.BlockPos, block host.BlockInfo) []host.ItemStack
}

// World implements host.World.
type World struct {
	catalog Catalog
	logger  *log.Logger

	blocks map[core.BlockPos]host.BlockInfo
	tiles  map[core.BlockPos]host.TileEntity
	order  []core.BlockPos
	sinks  map[core.BlockPos]*Sink
	tick   uint64
}

// New creates an empty world.
func New(catalog Catalog, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{
		catalog: catalog,
		logger:  logger.WithPrefix("world"),
		blocks:  make(map[core.BlockPos]host.BlockInfo),
		tiles:   make(map[core.BlockPos]host.TileEntity),
		sinks:   make(map[core.BlockPos]*Sink),
	}
}

// SetBlock implements host.World. Replacing a block removes its tile entity.
func (w *World) SetBlock(pos core.BlockPos, id, variant int) error {
	if id < Air {
		return fmt.Errorf("world: invalid block id %d", id)
	}
	w.RemoveTileEntity(pos)
	if id == Air {
		delete(w.blocks, pos)
		return nil
	}
	w.blocks[pos] = host.BlockInfo{ID: id, Data: variant}
	return nil
}

// Block returns the block at a position.
func (w *World) Block(pos core.BlockPos) (host.BlockInfo, bool) {
	b, ok := w.blocks[pos]
	return b, ok
}

// BreakBlock removes the block and its tile entity and returns its drops.
func (w *World) BreakBlock(pos core.BlockPos) []host.ItemStack {
	b, ok := w.blocks[pos]
	if !ok {
		return nil
	}
	w.RemoveTileEntity(pos)
	delete(w.blocks, pos)
	w.logger.Debug("block broken", "pos", pos, "id", b.ID)
	return w.catalog.Drops(pos, b)
}

// AddTileEntity implements host.World. The tile is created from the
// prototype bound to the block and initialised before it is returned.
func (w *World) AddTileEntity(pos core.BlockPos) (host.TileEntity, error) {
	b, ok := w.blocks[pos]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoBlock, pos)
	}
	if _, exists := w.tiles[pos]; exists {
		return nil, fmt.Errorf("%w: %v", ErrTileExists, pos)
	}
	proto, ok := w.catalog.Prototype(b.ID)
	if !ok {
		return nil, fmt.Errorf("%w: block %d at %v", ErrNoPrototype, b.ID, pos)
	}

	te := proto(pos)
	if err := te.Init(); err != nil {
		return nil, fmt.Errorf("world: init tile at %v: %w", pos, err)
	}
	w.tiles[pos] = te
	w.reorder()
	w.logger.Debug("tile added", "pos", pos, "block", b.ID)
	return te, nil
}

// RemoveTileEntity implements host.World. The tile stops ticking and is
// destroyed exactly once.
func (w *World) RemoveTileEntity(pos core.BlockPos) bool {
	te, ok := w.tiles[pos]
	if !ok {
		return false
	}
	delete(w.tiles, pos)
	w.reorder()
	te.Destroy()
	w.logger.Debug("tile removed", "pos", pos)
	return true
}

// TileEntity returns the tile entity at a position.
func (w *World) TileEntity(pos core.BlockPos) (host.TileEntity, bool) {
	te, ok := w.tiles[pos]
	return te, ok
}

// Positions returns the positions of all tile entities in tick order.
func (w *World) Positions() []core.BlockPos {
	return append([]core.BlockPos(nil), w.order...)
}

// Receiver implements host.World. Sinks take precedence over tiles that
// accept energy themselves.
func (w *World) Receiver(pos core.BlockPos) host.EnergyReceiver {
	if s, ok := w.sinks[pos]; ok {
		return s
	}
	if te, ok := w.tiles[pos]; ok {
		if r, ok := te.(host.EnergyReceiver); ok {
			return r
		}
	}
	return nil
}

// Tick advances every tile entity once, ordered by position.
func (w *World) Tick() {
	w.tick++
	// Tiles may add or remove others during their tick; the order is fixed
	// when the tick starts.
	for _, pos := range w.Positions() {
		if te, ok := w.tiles[pos]; ok {
			te.Tick()
		}
	}
}

// CurrentTick returns the number of ticks run so far.
func (w *World) CurrentTick() uint64 {
	return w.tick
}

// SetTick restores the tick counter, used when loading a snapshot.
func (w *World) SetTick(tick uint64) {
	w.tick = tick
}

// Clear removes every tile, block and sink.
func (w *World) Clear() {
	for _, pos := range w.Positions() {
		w.RemoveTileEntity(pos)
	}
	w.blocks = make(map[core.BlockPos]host.BlockInfo)
	w.sinks = make(map[core.BlockPos]*Sink)
	w.tick = 0
}

func (w *World) reorder() {
	w.order = w.order[:0]
	for pos := range w.tiles {
		w.order = append(w.order, pos)
	}
	sort.Slice(w.order, func(i, j int) bool {
		return w.order[i].Less(w.order[j])
	})
}

var _ host.World = (*World)(nil)
