package engine

import (
	"errors"
	"fmt"
)

// HeatMode selects how an engine produces heat each tick.
type HeatMode string

const (
	// HeatFixed pins heat to a level (creative engines).
	HeatFixed HeatMode = "fixed"
	// HeatFuel heats while fuel remains and cools otherwise.
	HeatFuel HeatMode = "fuel"
	// HeatSignal heats while a redstone signal is present.
	HeatSignal HeatMode = "signal"
)

// HeatModel is the tagged heat source of an engine kind.
type HeatModel struct {
	Mode    HeatMode
	Level   float64 // fixed heat level
	Gain    float64 // heat added per running tick
	Cooling float64 // heat removed per idle tick
}

// Params are the per-kind constants of an engine.
type Params struct {
	MaxHeat        float64
	EnergyPerPower float64 // energy produced per tick per unit of power
	MaxEnergy      float64 // internal buffer capacity
	Heat           HeatModel
}

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("engine: invalid params")

// Validate rejects parameter sets the simulation cannot honour.
func (p Params) Validate() error {
	if p.MaxHeat <= 0 || p.MaxHeat > HeatCeiling {
		return fmt.Errorf("%w: max heat %v outside (0, %v]", ErrInvalidParams, p.MaxHeat, HeatCeiling)
	}
	if p.EnergyPerPower < 0 {
		return fmt.Errorf("%w: negative energy per power %v", ErrInvalidParams, p.EnergyPerPower)
	}
	if p.MaxEnergy < 0 {
		return fmt.Errorf("%w: negative max energy %v", ErrInvalidParams, p.MaxEnergy)
	}
	switch p.Heat.Mode {
	case HeatFixed:
	case HeatFuel, HeatSignal:
		if p.Heat.Gain < 0 || p.Heat.Cooling < 0 {
			return fmt.Errorf("%w: negative heat gain or cooling", ErrInvalidParams)
		}
	default:
		return fmt.Errorf("%w: unknown heat mode %q", ErrInvalidParams, p.Heat.Mode)
	}
	return nil
}
