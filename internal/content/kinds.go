package content

import (
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/registry"
)

// Engine kind IDs.
const (
	KindCreative = "creative"
	KindIron     = "iron"
	KindRedstone = "redstone"
	KindStirling = "stirling"
	KindCustom   = "custom"
)

func init() {
	registry.Register(registry.Kind{
		ID:    KindCreative,
		Title: "Creative",
		Params: engine.Params{
			MaxHeat:        100,
			EnergyPerPower: 10,
			MaxEnergy:      1000,
			Heat:           engine.HeatModel{Mode: engine.HeatFixed, Level: 50},
		},
	})
	registry.Register(registry.Kind{
		ID:    KindIron,
		Title: "Combustion",
		Params: engine.Params{
			MaxHeat:        100,
			EnergyPerPower: 6,
			MaxEnergy:      10000,
			Heat:           engine.HeatModel{Mode: engine.HeatFuel, Gain: 2, Cooling: 10},
		},
	})
	registry.Register(registry.Kind{
		ID:    KindStirling,
		Title: "Stirling",
		Params: engine.Params{
			MaxHeat:        100,
			EnergyPerPower: 1,
			MaxEnergy:      1000,
			Heat:           engine.HeatModel{Mode: engine.HeatFuel, Gain: 1, Cooling: 40},
		},
	})
	registry.Register(registry.Kind{
		ID:    KindRedstone,
		Title: "Redstone",
		Params: engine.Params{
			MaxHeat:        100,
			EnergyPerPower: 0.1,
			MaxEnergy:      100,
			Heat:           engine.HeatModel{Mode: engine.HeatSignal, Gain: 1, Cooling: 80},
		},
	})
	// custom ships without a texture offset; configs that enable it must add one.
	registry.Register(registry.Kind{
		ID:    KindCustom,
		Title: "Custom",
		Params: engine.Params{
			MaxHeat:        100,
			EnergyPerPower: 1,
			MaxEnergy:      1000,
			Heat:           engine.HeatModel{Mode: engine.HeatFuel, Gain: 1, Cooling: 10},
		},
	})
}

// BlockStringID returns the block string id of a kind.
func BlockStringID(kind string) string {
	return "engine" + kind
}

// ItemStringID returns the item string id of a kind.
func ItemStringID(kind string) string {
	return "engine" + kind
}

// ItemName returns the display name of a kind's item.
func ItemName(kind string) string {
	return kind + " Engine"
}

// ItemTextureName returns the inventory icon name of a kind's item.
func ItemTextureName(kind string) string {
	return "engine_" + kind
}
