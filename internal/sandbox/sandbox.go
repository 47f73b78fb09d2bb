// Package sandbox assembles an in-memory host, a harness world and the
// installed engines mod, and offers the operations the front ends share:
// placing engines through their items, benches with a consumer, snapshots
// and tile-state persistence.
package sandbox

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bc-engines/internal/config"
	"github.com/vovakirdan/bc-engines/internal/content"
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/host"
	"github.com/vovakirdan/bc-engines/internal/host/memhost"
	"github.com/vovakirdan/bc-engines/internal/rig"
	"github.com/vovakirdan/bc-engines/internal/world"
)

// Origin is where Bench places its engine.
var Origin = core.BlockPos{X: 0, Y: 64, Z: 0}

// ErrNoEngine is returned when a position holds no engine tile.
var ErrNoEngine = errors.New("sandbox: no engine at position")

// Sandbox is a complete in-memory engines installation.
type Sandbox struct {
	Registry *memhost.Registry
	Renderer *memhost.Renderer
	World    *world.World
	Mod      *content.Mod

	cfg    config.Config
	logger *log.Logger
}

// New installs the mod into a fresh in-memory host.
func New(cfg config.Config, logger *log.Logger) (*Sandbox, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	reg := memhost.NewRegistry()
	renderer := memhost.NewRenderer()
	w := world.New(reg, logger)

	mod, err := content.Install(host.Host{
		Blocks:       reg,
		Items:        reg,
		TileEntities: reg,
		World:        w,
		Renderer:     renderer,
	}, cfg, rig.NewPool(), logger)
	if err != nil {
		return nil, err
	}

	return &Sandbox{
		Registry: reg,
		Renderer: renderer,
		World:    w,
		Mod:      mod,
		cfg:      cfg,
		logger:   logger.WithPrefix("sandbox"),
	}, nil
}

// Config returns the configuration the sandbox was built with.
func (s *Sandbox) Config() config.Config {
	return s.cfg
}

// UseItem uses the engine item of a kind on the face side of the block at
// against, as a player would.
func (s *Sandbox) UseItem(kind string, against core.BlockPos, side int) error {
	o, err := rig.Orient(side)
	if err != nil {
		return err
	}
	block, _ := s.World.Block(against)
	return s.Registry.Use(content.ItemStringID(kind), host.UseCoords{
		Pos:      against,
		Relative: against.Offset(o.Offset()),
		Side:     side,
	}, block)
}

// PlaceEngine places an engine of a kind at pos connected on side, through
// its item use function.
func (s *Sandbox) PlaceEngine(kind string, pos core.BlockPos, side int) (*content.Tile, error) {
	o, err := rig.Orient(side)
	if err != nil {
		return nil, err
	}
	against := pos.Offset(o.Offset().Scale(-1))
	if err := s.UseItem(kind, against, side); err != nil {
		return nil, err
	}
	return s.Tile(pos)
}

// Bench places an engine at Origin and a consumer on its connection side.
func (s *Sandbox) Bench(kind string, side int) (*content.Tile, *world.Sink, error) {
	t, err := s.PlaceEngine(kind, Origin, side)
	if err != nil {
		return nil, nil, err
	}
	sink := s.World.AddSink(t.Target(), s.cfg.Runtime.SinkCapacity)
	return t, sink, nil
}

// Tile returns the engine tile at a position.
func (s *Sandbox) Tile(pos core.BlockPos) (*content.Tile, error) {
	te, ok := s.World.TileEntity(pos)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoEngine, pos)
	}
	t, ok := te.(*content.Tile)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoEngine, pos)
	}
	return t, nil
}

// Tiles returns every engine tile in tick order.
func (s *Sandbox) Tiles() []*content.Tile {
	var tiles []*content.Tile
	for _, pos := range s.World.Positions() {
		if t, err := s.Tile(pos); err == nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Run ticks the world n times.
func (s *Sandbox) Run(n int) {
	for i := 0; i < n; i++ {
		s.World.Tick()
	}
}

// Rotate moves the engine at pos to its next connection side and moves the
// consumer on its old side along with it.
func (s *Sandbox) Rotate(pos core.BlockPos) error {
	t, err := s.Tile(pos)
	if err != nil {
		return err
	}
	old := t.Target()
	if err := t.Rotate(); err != nil {
		return err
	}
	if sink, ok := s.World.Sink(old); ok {
		s.World.RemoveSink(old)
		moved := s.World.AddSink(t.Target(), sink.Capacity)
		*moved = *sink
	}
	s.logger.Debug("engine rotated", "pos", pos, "side", t.Side())
	return nil
}
