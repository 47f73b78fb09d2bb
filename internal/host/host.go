// Package host describes the collaborators the engine content consumes from
// the game host: block and item registries, the tile-entity registry, world
// mutation and render/animation primitives. Only the contracts live here;
// memhost provides an in-memory implementation.
package host

import (
	"github.com/vovakirdan/bc-engines/internal/core"
)

// BlockVariant describes one variant of a registered block.
type BlockVariant struct {
	Name         string
	Texture      string
	TextureIndex int
	InCreative   bool
}

// ItemTexture names the inventory icon of an item.
type ItemTexture struct {
	Name string
	Meta int
}

// ItemStack is a stack of items.
type ItemStack struct {
	ID    int
	Count int
	Data  int
}

// BlockInfo identifies a block in the world.
type BlockInfo struct {
	ID   int
	Data int
}

// UseCoords are the coordinates passed to an item use function.
// Relative is the position adjacent to the clicked face; Side is the index
// of the clicked face (0..5).
type UseCoords struct {
	Pos      core.BlockPos
	Relative core.BlockPos
	Side     int
}

// DropFunc returns the items dropped when a block is broken.
type DropFunc func(pos core.BlockPos, block BlockInfo) []ItemStack

// UseFunc is called when a player uses an item on a block.
type UseFunc func(c UseCoords, item ItemStack, block BlockInfo) error

// BlockRegistry registers blocks by string id.
type BlockRegistry interface {
	RegisterBlock(stringID string, variants []BlockVariant) (int, error)
	RegisterDropFunction(id int, fn DropFunc)
}

// ItemRegistry registers items by string id.
type ItemRegistry interface {
	RegisterItem(stringID, name string, texture ItemTexture) (int, error)
	RegisterUseFunction(stringID string, fn UseFunc)
}

// TileEntity is per-block state driven by the host: Init once when the tile
// is created or loaded, Tick once per simulation step, Destroy once when the
// tile is removed.
type TileEntity interface {
	Init() error
	Tick()
	Destroy()
}

// Prototype creates the tile entity of a block at a position.
type Prototype func(pos core.BlockPos) TileEntity

// TileEntityRegistry binds tile-entity prototypes to block ids.
type TileEntityRegistry interface {
	RegisterPrototype(blockID int, proto Prototype)
}

// EnergyReceiver accepts energy pushed into a block and returns the amount accepted.
type EnergyReceiver interface {
	ReceiveEnergy(amount float64) float64
}

// Air is the block id that clears a position.
const Air = 0

// World is the mutable block world.
type World interface {
	SetBlock(pos core.BlockPos, id, variant int) error
	AddTileEntity(pos core.BlockPos) (TileEntity, error)
	RemoveTileEntity(pos core.BlockPos) bool
	Receiver(pos core.BlockPos) EnergyReceiver
}

// RenderHandle is a render model made of named parts.
type RenderHandle interface {
	ID() int
	SetPart(name string, boxes []core.Box, size core.Size)
	Refresh()
}

// Animation is a render instance bound to world coordinates.
type Animation interface {
	Describe(renderID int)
	Load()
	SetPosition(at core.Vec3)
	Refresh()
	Destroy()
}

// Renderer creates render handles and animations.
type Renderer interface {
	NewRender(skin string) (RenderHandle, error)
	NewAnimation(at core.Vec3) (Animation, error)
}

// Host bundles every collaborator.
type Host struct {
	Blocks       BlockRegistry
	Items        ItemRegistry
	TileEntities TileEntityRegistry
	World        World
	Renderer     Renderer
}
