package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/host"
	"github.com/vovakirdan/bc-engines/internal/rig"
)

// ErrNotFixedHeat is returned when setting the heat level of a kind whose
// heat is not pinned.
var ErrNotFixedHeat = errors.New("content: engine heat is not adjustable")

// Tile is the tile entity of one placed engine.
type Tile struct {
	mod    *Mod
	kind   *Engine
	pos    core.BlockPos
	side   int
	params engine.Params
	state  engine.State
	rig    *rig.Rig
	logger *log.Logger

	last engine.TickResult
}

func (m *Mod) newTile(e *Engine, pos core.BlockPos, side int) *Tile {
	return &Tile{
		mod:    m,
		kind:   e,
		pos:    pos,
		side:   side,
		params: e.Params,
		state:  engine.Init(e.Params),
		logger: m.logger.With("pos", pos, "kind", e.Kind.ID),
	}
}

// Init implements host.TileEntity. It builds the animation rig.
func (t *Tile) Init() error {
	r, err := rig.New(rig.Options{
		Pos:      t.pos,
		Kind:     t.kind.Kind.ID,
		Side:     t.side,
		Stage:    t.state.HeatStage,
		Atlas:    t.mod.atlas,
		Renderer: t.mod.host.Renderer,
		Pool:     t.mod.pool,
	})
	if err != nil {
		return fmt.Errorf("content: init engine at %v: %w", t.pos, err)
	}
	t.rig = r
	t.logger.Debug("tile initialised", "side", t.side)
	return nil
}

// Tick implements host.TileEntity. It advances the simulation, delivering
// energy to the receiver on the connection side, and updates the rig.
func (t *Tile) Tick() {
	var recv engine.Receiver
	if r := t.mod.host.World.Receiver(t.Target()); r != nil {
		recv = r
	}

	res := engine.Tick(&t.state, t.params, recv)
	t.last = res
	if res.StageChanged {
		t.logger.Debug("heat stage changed", "stage", t.state.HeatStage, "heat", t.state.Heat)
	}
	if res.Deployed {
		t.logger.Debug("energy deployed", "accepted", res.Accepted, "buffered", t.state.Energy)
	}

	if t.rig != nil {
		if err := t.rig.Update(t.state.HeatStage, t.state.Piston.Position); err != nil {
			t.logger.Error("rig update failed", "error", err)
		}
	}
}

// Destroy implements host.TileEntity. It releases the rig; repeated calls are no-ops.
func (t *Tile) Destroy() {
	if t.rig != nil {
		t.rig.Destroy()
	}
}

// Target returns the position of the connected neighbour.
func (t *Tile) Target() core.BlockPos {
	o, err := rig.Orient(t.side)
	if err != nil {
		return t.pos
	}
	return t.pos.Offset(o.Offset())
}

// Side returns the connection side.
func (t *Tile) Side() int {
	return t.side
}

// SetSide changes the connection side and rebuilds the rig geometry.
func (t *Tile) SetSide(side int) error {
	if _, err := rig.Orient(side); err != nil {
		return err
	}
	if t.rig != nil {
		if err := t.rig.Rotate(side); err != nil {
			return err
		}
	}
	t.side = side
	return nil
}

// Rotate moves the connection side to the next side, as a wrench does.
func (t *Tile) Rotate() error {
	return t.SetSide(rig.NextSide(t.side))
}

// AddFuel adds burn ticks for fuel-driven kinds.
func (t *Tile) AddFuel(ticks int) {
	if ticks > 0 {
		t.state.Fuel += ticks
	}
}

// SetSignal sets the redstone signal for signal-driven kinds.
func (t *Tile) SetSignal(on bool) {
	t.state.Signal = on
}

// SetHeatLevel changes the pinned heat level of a fixed-heat kind.
func (t *Tile) SetHeatLevel(level float64) error {
	if t.params.Heat.Mode != engine.HeatFixed {
		return fmt.Errorf("%w: %s uses %s heat", ErrNotFixedHeat, t.kind.Kind.ID, t.params.Heat.Mode)
	}
	t.params.Heat.Level = core.ClampF(level, 0, engine.HeatCeiling)
	return nil
}

// HeatLevel returns the pinned heat level.
func (t *Tile) HeatLevel() float64 {
	return t.params.Heat.Level
}

// Kind returns the installed kind of the tile.
func (t *Tile) Kind() *Engine {
	return t.kind
}

// Pos returns the tile position.
func (t *Tile) Pos() core.BlockPos {
	return t.pos
}

// State returns a copy of the simulation state.
func (t *Tile) State() engine.State {
	return t.state
}

// LastTick returns the result of the most recent tick.
func (t *Tile) LastTick() engine.TickResult {
	return t.last
}

// Rig returns the animation rig, nil before Init.
func (t *Tile) Rig() *rig.Rig {
	return t.rig
}

// Status implements host.Reporter.
func (t *Tile) Status() host.TileStatus {
	return host.TileStatus{
		Pos:         t.pos,
		Kind:        t.kind.Kind.ID,
		Side:        t.side,
		Heat:        t.state.Heat,
		HeatStage:   t.state.HeatStage.String(),
		Power:       t.state.Power,
		TargetPower: t.state.TargetPower,
		Piston:      t.state.Piston.Position,
		Energy:      t.state.Energy,
		Fuel:        t.state.Fuel,
		Signal:      t.state.Signal,
		Deploys:     t.state.Deploys,
		Delivered:   t.state.Delivered,
	}
}

// savedTile is the persisted form of a tile.
type savedTile struct {
	Kind      string       `json:"kind"`
	Side      int          `json:"side"`
	HeatLevel float64      `json:"heat_level"`
	State     engine.State `json:"state"`
}

// SaveState implements host.Persistent.
func (t *Tile) SaveState() ([]byte, error) {
	return json.Marshal(savedTile{
		Kind:      t.kind.Kind.ID,
		Side:      t.side,
		HeatLevel: t.params.Heat.Level,
		State:     t.state,
	})
}

// LoadState implements host.Persistent. The rig is brought in line with
// the loaded side, heat stage and piston position.
func (t *Tile) LoadState(data []byte) error {
	var saved savedTile
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("content: cannot decode tile state: %w", err)
	}
	if saved.Kind != t.kind.Kind.ID {
		return fmt.Errorf("content: saved state of %q loaded into %q", saved.Kind, t.kind.Kind.ID)
	}
	if err := t.SetSide(saved.Side); err != nil {
		return err
	}

	t.state = saved.State
	if t.params.Heat.Mode == engine.HeatFixed {
		t.params.Heat.Level = saved.HeatLevel
	}
	if t.rig != nil {
		return t.rig.Update(t.state.HeatStage, t.state.Piston.Position)
	}
	return nil
}

var (
	_ host.TileEntity = (*Tile)(nil)
	_ host.Reporter   = (*Tile)(nil)
	_ host.Persistent = (*Tile)(nil)
)
