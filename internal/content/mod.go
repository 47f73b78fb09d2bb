// Package content is the engines mod: it registers one block, item and
// tile-entity prototype per engine kind against the host and drives the
// engine simulation and animation rig of every placed engine.
package content

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/host"
	"github.com/vovakirdan/bc-engines/internal/registry"
	"github.com/vovakirdan/bc-engines/internal/rig"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

// blockTexture is the placeholder block texture; engines are drawn by their rig.
const blockTexture = "empty"

// ErrNotInstalled is returned for kinds the mod did not register.
var ErrNotInstalled = errors.New("content: engine kind not installed")

// Engine is an installed engine kind with the host ids it was registered under.
type Engine struct {
	Kind    registry.Kind
	Params  engine.Params
	BlockID int
	ItemID  int
}

// Mod is the installed engines mod.
type Mod struct {
	host   host.Host
	atlas  texture.Atlas
	pool   *rig.Pool
	logger *log.Logger

	engines []*Engine
	byKind  map[string]*Engine
	byBlock map[int]*Engine

	mu        sync.Mutex
	placement map[core.BlockPos]int // side chosen by the item use function
}

// Install validates the configuration and registers every configured kind
// against the host. Nothing is registered when validation fails.
func Install(h host.Host, cfg config.Config, pool *rig.Pool, logger *log.Logger) (*Mod, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if pool == nil {
		pool = rig.NewPool()
	}

	atlas, err := cfg.TextureAtlas()
	if err != nil {
		return nil, err
	}
	kinds := cfg.KindIDs()
	if len(kinds) == 0 {
		return nil, errors.New("content: no engine kinds configured")
	}

	m := &Mod{
		host:      h,
		atlas:     atlas,
		pool:      pool,
		logger:    logger.WithPrefix("content"),
		byKind:    make(map[string]*Engine),
		byBlock:   make(map[int]*Engine),
		placement: make(map[core.BlockPos]int),
	}

	for _, id := range kinds {
		k, err := registry.Get(id)
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		params := cfg.Kinds[id].Params()
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("content: engine kind %q: %w", id, err)
		}
		m.engines = append(m.engines, &Engine{Kind: k, Params: params})
	}
	if err := atlas.Validate(kinds); err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}

	for _, e := range m.engines {
		if err := m.register(e); err != nil {
			return nil, err
		}
		m.logger.Debug("engine registered", "kind", e.Kind.ID, "block", e.BlockID, "item", e.ItemID)
	}
	return m, nil
}

func (m *Mod) register(e *Engine) error {
	kind := e.Kind.ID
	blockSID := BlockStringID(kind)

	var err error
	e.BlockID, err = m.host.Blocks.RegisterBlock(blockSID, []host.BlockVariant{{
		Name:         blockSID,
		Texture:      blockTexture,
		TextureIndex: 0,
		InCreative:   false,
	}})
	if err != nil {
		return fmt.Errorf("content: cannot register block %s: %w", blockSID, err)
	}
	m.host.Blocks.RegisterDropFunction(e.BlockID, noDrops)

	itemSID := ItemStringID(kind)
	e.ItemID, err = m.host.Items.RegisterItem(itemSID, ItemName(kind), host.ItemTexture{Name: ItemTextureName(kind)})
	if err != nil {
		return fmt.Errorf("content: cannot register item %s: %w", itemSID, err)
	}
	m.host.Items.RegisterUseFunction(itemSID, m.useFunc(e))

	m.host.TileEntities.RegisterPrototype(e.BlockID, func(pos core.BlockPos) host.TileEntity {
		return m.newTile(e, pos, m.takePlacement(pos))
	})

	m.byKind[kind] = e
	m.byBlock[e.BlockID] = e
	return nil
}

// Engines dropped by breaking the block are not returned.
func noDrops(core.BlockPos, host.BlockInfo) []host.ItemStack {
	return nil
}

// useFunc places the engine block next to the clicked face, facing that face.
func (m *Mod) useFunc(e *Engine) host.UseFunc {
	return func(c host.UseCoords, _ host.ItemStack, _ host.BlockInfo) error {
		return m.Place(e.Kind.ID, c.Relative, c.Side)
	}
}

// Place sets an engine block and adds its tile entity with a connection side.
func (m *Mod) Place(kind string, pos core.BlockPos, side int) error {
	e, ok := m.byKind[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInstalled, kind)
	}
	if _, err := rig.Orient(side); err != nil {
		return fmt.Errorf("content: place %s: %w", kind, err)
	}

	if err := m.host.World.SetBlock(pos, e.BlockID, 0); err != nil {
		return fmt.Errorf("content: place %s at %v: %w", kind, pos, err)
	}

	m.mu.Lock()
	m.placement[pos] = side
	m.mu.Unlock()

	if _, err := m.host.World.AddTileEntity(pos); err != nil {
		m.takePlacement(pos)
		if clearErr := m.host.World.SetBlock(pos, host.Air, 0); clearErr != nil {
			m.logger.Error("cannot clear engine block", "pos", pos, "error", clearErr)
		}
		return fmt.Errorf("content: place %s at %v: %w", kind, pos, err)
	}
	m.logger.Info("engine placed", "kind", kind, "pos", pos, "side", side)
	return nil
}

func (m *Mod) takePlacement(pos core.BlockPos) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	side, ok := m.placement[pos]
	if !ok {
		return rig.DefaultSide
	}
	delete(m.placement, pos)
	return side
}

// Engines returns the installed kinds in registration order.
func (m *Mod) Engines() []*Engine {
	return append([]*Engine(nil), m.engines...)
}

// Engine returns an installed kind.
func (m *Mod) Engine(kind string) (*Engine, bool) {
	e, ok := m.byKind[kind]
	return e, ok
}

// EngineByBlock returns the installed kind registered under a block id.
func (m *Mod) EngineByBlock(blockID int) (*Engine, bool) {
	e, ok := m.byBlock[blockID]
	return e, ok
}

// Atlas returns the validated texture atlas.
func (m *Mod) Atlas() texture.Atlas {
	return m.atlas
}

// Pool returns the render pool shared by every rig.
func (m *Mod) Pool() *rig.Pool {
	return m.pool
}
