// Package engine implements the engine tile-entity simulation: heat staging,
// the power rate limiter, piston travel and energy deployment. Everything here
// is a plain state struct driven by free functions, one call per host tick.
package engine

import (
	"fmt"
	"math"
	"strings"
)

// HeatStage is the discrete heat level derived from an engine's heat.
type HeatStage int

const (
	Blue HeatStage = iota
	Green
	Orange
	Red
	// Black is a ceiling that StageIndex never selects.
	Black
)

// Stages lists every heat stage in ascending order.
var Stages = [...]HeatStage{Blue, Green, Orange, Red, Black}

// maxStageIndex is the highest index the heat derivation can produce.
const maxStageIndex = 3

func (h HeatStage) String() string {
	switch h {
	case Blue:
		return "BLUE"
	case Green:
		return "GREEN"
	case Orange:
		return "ORANGE"
	case Red:
		return "RED"
	case Black:
		return "BLACK"
	default:
		return fmt.Sprintf("HeatStage(%d)", int(h))
	}
}

// ParseHeatStage parses a stage name case-insensitively.
func ParseHeatStage(s string) (HeatStage, error) {
	for _, h := range Stages {
		if strings.EqualFold(h.String(), s) {
			return h, nil
		}
	}
	return Blue, fmt.Errorf("engine: unknown heat stage %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (h HeatStage) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HeatStage) UnmarshalText(b []byte) error {
	stage, err := ParseHeatStage(string(b))
	if err != nil {
		return err
	}
	*h = stage
	return nil
}

// StageIndex maps heat onto a stage index: floor(heat/maxHeat*3) clamped to [0,3].
func StageIndex(heat, maxHeat float64) int {
	idx := math.Floor(heat / maxHeat * 3)
	if math.IsNaN(idx) || idx < 0 {
		return 0
	}
	if idx > maxStageIndex {
		return maxStageIndex
	}
	return int(idx)
}
