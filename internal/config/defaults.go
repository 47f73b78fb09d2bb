package config

import (
	_ "embed"
	"strings"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

//go:embed defaults/engines.yaml
var defaultEnginesYAML []byte

//go:embed defaults/engines.schema.json
var enginesSchemaJSON []byte

// DefaultConfig returns the built-in configuration. It matches the embedded
// defaults/engines.yaml and is used when that document cannot be decoded.
func DefaultConfig() Config {
	atlas := texture.DefaultAtlas()

	base := make(map[string]core.UV, len(atlas.Base))
	for kind, uv := range atlas.Base {
		base[kind] = uv
	}
	trunk := make(map[string]core.UV, len(atlas.Trunk))
	for stage, uv := range atlas.Trunk {
		trunk[strings.ToLower(stage.String())] = uv
	}

	return Config{
		Runtime: RuntimeConfig{
			TickRate:     20,
			SinkCapacity: 0,
		},
		Atlas: AtlasConfig{
			Name:       atlas.Name,
			Width:      atlas.Size.Width,
			Height:     atlas.Size.Height,
			AxisStride: atlas.AxisStride,
			Base:       base,
			Trunk:      trunk,
		},
		Kinds: map[string]KindConfig{
			"creative": {
				MaxHeat:        100,
				EnergyPerPower: 10,
				MaxEnergy:      1000,
				Heat:           HeatConfig{Mode: string(engine.HeatFixed), Level: 50},
			},
			"iron": {
				MaxHeat:        100,
				EnergyPerPower: 6,
				MaxEnergy:      10000,
				Heat:           HeatConfig{Mode: string(engine.HeatFuel), Gain: 2, Cooling: 10},
			},
			"stirling": {
				MaxHeat:        100,
				EnergyPerPower: 1,
				MaxEnergy:      1000,
				Heat:           HeatConfig{Mode: string(engine.HeatFuel), Gain: 1, Cooling: 40},
			},
			"redstone": {
				MaxHeat:        100,
				EnergyPerPower: 0.1,
				MaxEnergy:      100,
				Heat:           HeatConfig{Mode: string(engine.HeatSignal), Gain: 1, Cooling: 80},
			},
		},
		Preview: PreviewConfig{
			Kind:   "creative",
			Side:   1,
			Width:  60,
			Height: 22,
		},
		Observer: ObserverConfig{
			Addr: "127.0.0.1:8090",
		},
		SSH: SSHConfig{
			Host:    "0.0.0.0",
			Port:    2222,
			HostKey: ".ssh/bcengines_ed25519",
		},
		Storage: StorageConfig{
			Path: "~/.bcengines/history.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultEnginesYAML
}

// SchemaJSON returns the embedded JSON schema of configuration documents.
func SchemaJSON() []byte {
	return enginesSchemaJSON
}
