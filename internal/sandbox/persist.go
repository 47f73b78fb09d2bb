package sandbox

import (
	"fmt"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/rig"
	"github.com/vovakirdan/bc-engines/internal/snapshot"
	"github.com/vovakirdan/bc-engines/internal/storage"
)

// Capture builds a snapshot of every engine tile and consumer.
func (s *Sandbox) Capture() (snapshot.Snapshot, error) {
	var tiles []snapshot.Tile
	for _, t := range s.Tiles() {
		data, err := t.SaveState()
		if err != nil {
			return snapshot.Snapshot{}, fmt.Errorf("sandbox: capture %v: %w", t.Pos(), err)
		}
		tiles = append(tiles, snapshot.Tile{
			Pos:   t.Pos(),
			Kind:  t.Kind().Kind.ID,
			Side:  t.Side(),
			State: data,
		})
	}

	var sinks []snapshot.Sink
	for _, pos := range s.World.SinkPositions() {
		sink, _ := s.World.Sink(pos)
		sinks = append(sinks, snapshot.Sink{
			Pos:        pos,
			Capacity:   sink.Capacity,
			Received:   sink.Received,
			Deliveries: sink.Deliveries,
		})
	}
	return snapshot.New(s.World.CurrentTick(), tiles, sinks), nil
}

// Restore replaces the world content with a snapshot. Every current tile is
// destroyed first. When the snapshot cannot be applied the previous content
// is put back and the error is returned.
func (s *Sandbox) Restore(snap snapshot.Snapshot) error {
	prev, err := s.Capture()
	if err != nil {
		return fmt.Errorf("sandbox: restore: %w", err)
	}

	if err := s.apply(snap); err != nil {
		if rollbackErr := s.apply(prev); rollbackErr != nil {
			s.logger.Error("rollback failed", "error", rollbackErr)
		}
		return err
	}
	s.logger.Info("world restored", "tick", snap.Header.Tick, "tiles", len(snap.Tiles), "sinks", len(snap.Sinks))
	return nil
}

func (s *Sandbox) apply(snap snapshot.Snapshot) error {
	s.World.Clear()

	for _, rec := range snap.Tiles {
		if err := s.Mod.Place(rec.Kind, rec.Pos, rec.Side); err != nil {
			return fmt.Errorf("sandbox: restore: %w", err)
		}
		t, err := s.Tile(rec.Pos)
		if err != nil {
			return fmt.Errorf("sandbox: restore: %w", err)
		}
		if err := t.LoadState(rec.State); err != nil {
			return fmt.Errorf("sandbox: restore %v: %w", rec.Pos, err)
		}
	}
	for _, rec := range snap.Sinks {
		sink := s.World.AddSink(rec.Pos, rec.Capacity)
		sink.Received = rec.Received
		sink.Deliveries = rec.Deliveries
	}
	s.World.SetTick(snap.Header.Tick)
	return nil
}

// SaveTiles writes the state of every engine tile to the store.
func (s *Sandbox) SaveTiles(store *storage.Store) error {
	for _, t := range s.Tiles() {
		data, err := t.SaveState()
		if err != nil {
			return fmt.Errorf("sandbox: save %v: %w", t.Pos(), err)
		}
		if err := store.SaveTileState(t.Pos(), t.Kind().Kind.ID, data); err != nil {
			return err
		}
	}
	return nil
}

// LoadTiles places an engine for every stored tile state and loads it.
// Positions that already hold an engine are only reloaded.
func (s *Sandbox) LoadTiles(store *storage.Store) (int, error) {
	states, err := store.TileStates()
	if err != nil {
		return 0, err
	}
	for _, st := range states {
		t, err := s.Tile(st.Pos)
		if err != nil {
			if err := s.Mod.Place(st.Kind, st.Pos, rig.DefaultSide); err != nil {
				return 0, fmt.Errorf("sandbox: load %v: %w", st.Pos, err)
			}
			if t, err = s.Tile(st.Pos); err != nil {
				return 0, err
			}
		}
		if err := t.LoadState(st.Data); err != nil {
			return 0, fmt.Errorf("sandbox: load %v: %w", st.Pos, err)
		}
	}
	return len(states), nil
}

// RunSummary summarises the engine at pos as a run record.
func (s *Sandbox) RunSummary(pos core.BlockPos) (storage.Run, error) {
	t, err := s.Tile(pos)
	if err != nil {
		return storage.Run{}, err
	}
	st := t.State()
	return storage.Run{
		Kind:       t.Kind().Kind.ID,
		Side:       t.Side(),
		Ticks:      int(st.Ticks),
		Deploys:    st.Deploys,
		Delivered:  st.Delivered,
		FinalStage: st.HeatStage.String(),
	}, nil
}
