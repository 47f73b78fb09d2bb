package engine

// ApplyHeatModel produces this tick's heat from the kind's heat source.
func ApplyHeatModel(s *State, m HeatModel) {
	switch m.Mode {
	case HeatFixed:
		s.Heat = m.Level
	case HeatFuel:
		if s.Fuel > 0 {
			s.Fuel--
			s.Heat += m.Gain
		} else {
			s.Heat -= m.Cooling
		}
	case HeatSignal:
		if s.Signal {
			s.Heat += m.Gain
		} else {
			s.Heat -= m.Cooling
		}
	}
}

// UpdateHeat derives the heat stage and target power from heat, steps power
// toward the target and clamps heat into [maxHeat, HeatCeiling].
// It reports whether the heat stage changed.
func UpdateHeat(s *State, maxHeat float64) bool {
	idx := StageIndex(s.Heat, maxHeat)
	prev := s.HeatStage
	s.HeatStage = Stages[idx]
	s.TargetPower = float64(idx) + TargetPowerBias
	s.Power = approach(s.Power, s.TargetPower, PowerStep)
	s.Heat = clamp(s.Heat, maxHeat, HeatCeiling)
	return prev != s.HeatStage
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	switch {
	case v < target:
		if target-v <= step {
			return target
		}
		return v + step
	case v > target:
		if v-target <= step {
			return target
		}
		return v - step
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
