package engine

// Receiver accepts energy deployed by an engine, usually the block on the
// engine's connection side. It returns the amount actually accepted.
type Receiver interface {
	ReceiveEnergy(amount float64) float64
}

// TickResult describes what happened during one Tick.
type TickResult struct {
	StageChanged bool
	Deployed     bool
	Accepted     float64
}

// Tick advances the engine by one simulation step. recv may be nil when
// nothing is connected; deployed energy then stays buffered.
func Tick(s *State, p Params, recv Receiver) TickResult {
	var res TickResult

	s.Ticks++
	ApplyHeatModel(s, p.Heat)
	res.StageChanged = UpdateHeat(s, p.MaxHeat)

	s.Energy = min(p.MaxEnergy, s.Energy+s.Power*p.EnergyPerPower)

	MovePiston(&s.Piston, s.Power)
	if ReadyToGoBack(s.Piston) {
		res.Deployed = true
		res.Accepted = Deploy(s, recv)
		GoBack(&s.Piston)
	}
	return res
}

// Deploy hands the buffered energy to recv and returns the accepted amount.
func Deploy(s *State, recv Receiver) float64 {
	s.Deploys++
	if recv == nil || s.Energy <= 0 {
		return 0
	}
	accepted := clamp(recv.ReceiveEnergy(s.Energy), 0, s.Energy)
	s.Energy -= accepted
	s.Delivered += accepted
	return accepted
}
