package world

import (
	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/host"
)

// SinkStatus is the telemetry view of a sink.
type SinkStatus struct {
	Pos core.BlockPos `json:"pos"`
	Sink
}

// Frame is an immutable telemetry snapshot of the world after a tick.
type Frame struct {
	Tick  uint64            `json:"tick"`
	Tiles []host.TileStatus `json:"tiles"`
	Sinks []SinkStatus      `json:"sinks"`
}

// Frame captures the current world state.
func (w *World) Frame() Frame {
	f := Frame{
		Tick:  w.tick,
		Tiles: make([]host.TileStatus, 0, len(w.order)),
		Sinks: make([]SinkStatus, 0, len(w.sinks)),
	}
	for _, pos := range w.order {
		if r, ok := w.tiles[pos].(host.Reporter); ok {
			f.Tiles = append(f.Tiles, r.Status())
		}
	}
	for _, pos := range w.SinkPositions() {
		f.Sinks = append(f.Sinks, SinkStatus{Pos: pos, Sink: *w.sinks[pos]})
	}
	return f
}
