// Package config provides YAML-based engine configuration loading and
// schema validation for the engines harness.
package config

import (
	"fmt"
	"net"
	"sort"
	"strconv"

	"github.com/vovakirdan/bc-engines/internal/core"
	"github.com/vovakirdan/bc-engines/internal/engine"
	"github.com/vovakirdan/bc-engines/internal/texture"
)

// Config is the full harness configuration.
type Config struct {
	Runtime  RuntimeConfig         `yaml:"runtime"`
	Atlas    AtlasConfig           `yaml:"atlas"`
	Kinds    map[string]KindConfig `yaml:"kinds"`
	Preview  PreviewConfig         `yaml:"preview"`
	Observer ObserverConfig        `yaml:"observer"`
	SSH      SSHConfig             `yaml:"ssh"`
	Storage  StorageConfig         `yaml:"storage"`
}

// RuntimeConfig defines simulation timing and the harness world.
type RuntimeConfig struct {
	TickRate     int     `yaml:"tick_rate"`     // ticks per second
	SinkCapacity float64 `yaml:"sink_capacity"` // energy a consumer accepts per deploy, 0 = unlimited
}

// KindConfig overrides the simulation parameters of one engine kind.
type KindConfig struct {
	MaxHeat        float64    `yaml:"max_heat"`
	EnergyPerPower float64    `yaml:"energy_per_power"`
	MaxEnergy      float64    `yaml:"max_energy"`
	Heat           HeatConfig `yaml:"heat"`
}

// HeatConfig defines the heat source of a kind.
type HeatConfig struct {
	Mode    string  `yaml:"mode"` // "fixed", "fuel" or "signal"
	Level   float64 `yaml:"level"`
	Gain    float64 `yaml:"gain"`
	Cooling float64 `yaml:"cooling"`
}

// AtlasConfig defines the engine texture atlas offsets.
type AtlasConfig struct {
	Name       string             `yaml:"name"`
	Width      int                `yaml:"width"`
	Height     int                `yaml:"height"`
	AxisStride int                `yaml:"axis_stride"`
	Base       map[string]core.UV `yaml:"base"`  // per engine kind
	Trunk      map[string]core.UV `yaml:"trunk"` // per heat stage name
}

// PreviewConfig defines the terminal preview defaults.
type PreviewConfig struct {
	Kind   string `yaml:"kind"`
	Side   int    `yaml:"side"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// ObserverConfig defines the websocket telemetry server.
type ObserverConfig struct {
	Addr string `yaml:"addr"`
}

// SSHConfig defines the SSH preview server.
type SSHConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// StorageConfig defines the sqlite history database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Params converts the kind configuration into simulation parameters.
func (k KindConfig) Params() engine.Params {
	return engine.Params{
		MaxHeat:        k.MaxHeat,
		EnergyPerPower: k.EnergyPerPower,
		MaxEnergy:      k.MaxEnergy,
		Heat: engine.HeatModel{
			Mode:    engine.HeatMode(k.Heat.Mode),
			Level:   k.Heat.Level,
			Gain:    k.Heat.Gain,
			Cooling: k.Heat.Cooling,
		},
	}
}

// KindIDs returns the configured kinds, sorted.
func (c Config) KindIDs() []string {
	ids := make([]string, 0, len(c.Kinds))
	for id := range c.Kinds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TextureAtlas converts the atlas configuration. Trunk keys must name heat
// stages; completeness is checked later by texture.Atlas.Validate.
func (c Config) TextureAtlas() (texture.Atlas, error) {
	a := texture.Atlas{
		Name:       c.Atlas.Name,
		Size:       core.Size{Width: c.Atlas.Width, Height: c.Atlas.Height},
		AxisStride: c.Atlas.AxisStride,
		Base:       make(map[string]core.UV, len(c.Atlas.Base)),
		Trunk:      make(map[engine.HeatStage]core.UV, len(c.Atlas.Trunk)),
	}
	for kind, uv := range c.Atlas.Base {
		a.Base[kind] = uv
	}
	for name, uv := range c.Atlas.Trunk {
		stage, err := engine.ParseHeatStage(name)
		if err != nil {
			return texture.Atlas{}, fmt.Errorf("config: atlas trunk: %w", err)
		}
		a.Trunk[stage] = uv
	}
	return a, nil
}

// Address returns the host:port the SSH server listens on.
func (s SSHConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ScreenConfig returns the runtime settings of the terminal preview.
func (c Config) ScreenConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  c.Preview.Width,
		ScreenH:  c.Preview.Height,
		TickRate: c.Runtime.TickRate,
	}
}
