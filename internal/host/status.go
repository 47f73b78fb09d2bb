package host

import "github.com/vovakirdan/bc-engines/internal/core"

// TileStatus is a read-only view of a tile entity for front ends.
type TileStatus struct {
	Pos         core.BlockPos `json:"pos"`
	Kind        string        `json:"kind"`
	Side        int           `json:"side"`
	Heat        float64       `json:"heat"`
	HeatStage   string        `json:"heat_stage"`
	Power       float64       `json:"power"`
	TargetPower float64       `json:"target_power"`
	Piston      float64       `json:"piston"`
	Energy      float64       `json:"energy"`
	Fuel        int           `json:"fuel"`
	Signal      bool          `json:"signal"`
	Deploys     int           `json:"deploys"`
	Delivered   float64       `json:"delivered"`
}

// Reporter is implemented by tile entities that expose a status.
type Reporter interface {
	Status() TileStatus
}

// Persistent is implemented by tile entities whose state survives a reload.
type Persistent interface {
	SaveState() ([]byte, error)
	LoadState(data []byte) error
}
