package world

import (
	"sort"

	"github.com/vovakirdan/bc-engines/internal/core"
)

// Sink is an energy consumer. Capacity bounds the energy accepted per
// delivery; zero means unlimited.
type Sink struct {
	Capacity   float64 `json:"capacity"`
	Received   float64 `json:"received"`
	Deliveries int     `json:"deliveries"`
}

// ReceiveEnergy implements host.EnergyReceiver.
func (s *Sink) ReceiveEnergy(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	accepted := amount
	if s.Capacity > 0 && accepted > s.Capacity {
		accepted = s.Capacity
	}
	s.Received += accepted
	s.Deliveries++
	return accepted
}

// AddSink places an energy consumer at a position, replacing any previous one.
func (w *World) AddSink(pos core.BlockPos, capacity float64) *Sink {
	s := &Sink{Capacity: capacity}
	w.sinks[pos] = s
	w.logger.Debug("sink added", "pos", pos, "capacity", capacity)
	return s
}

// Sink returns the consumer at a position.
func (w *World) Sink(pos core.BlockPos) (*Sink, bool) {
	s, ok := w.sinks[pos]
	return s, ok
}

// RemoveSink removes the consumer at a position.
func (w *World) RemoveSink(pos core.BlockPos) bool {
	if _, ok := w.sinks[pos]; !ok {
		return false
	}
	delete(w.sinks, pos)
	return true
}

// SinkPositions returns the positions of all sinks, sorted.
func (w *World) SinkPositions() []core.BlockPos {
	result := make([]core.BlockPos, 0, len(w.sinks))
	for pos := range w.sinks {
		result = append(result, pos)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Less(result[j])
	})
	return result
}
