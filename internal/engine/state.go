package engine

// Simulation constants.
const (
	PowerStep       = 0.04  // max change of Power per tick
	TargetPowerBias = 0.4   // TargetPower = stage index + bias
	HeatCeiling     = 100.0 // upper heat clamp
	PistonScale     = 64.0  // Position += Power * Multiplier / PistonScale
	PistonThreshold = 0.5   // Position beyond which the piston deploys and returns
)

// Piston is the travel accumulator of the engine piston.
type Piston struct {
	Position   float64 `json:"position"`
	Multiplier int     `json:"multiplier"` // +1 advancing, -1 retracting
}

// Advancing reports whether the piston is moving outwards.
func (p Piston) Advancing() bool {
	return p.Multiplier >= 0
}

// State is the per-instance state of one engine tile entity.
type State struct {
	Energy      float64   `json:"energy"`
	Heat        float64   `json:"heat"`
	Power       float64   `json:"power"`
	TargetPower float64   `json:"target_power"`
	HeatStage   HeatStage `json:"heat_stage"`
	Piston      Piston    `json:"piston"`

	Fuel   int  `json:"fuel"`   // remaining burn ticks (fuel heat mode)
	Signal bool `json:"signal"` // redstone signal (signal heat mode)

	Ticks     uint64  `json:"ticks"`
	Deploys   int     `json:"deploys"`
	Delivered float64 `json:"delivered"`
}

// Init returns the state of a freshly placed engine.
func Init(p Params) State {
	s := State{
		HeatStage: Blue,
		Piston:    Piston{Multiplier: 1},
	}
	if p.Heat.Mode == HeatFixed {
		s.Heat = p.Heat.Level
	}
	return s
}
