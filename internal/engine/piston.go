package engine

// MovePiston advances the piston by one tick of travel.
// A piston that dropped below zero resumes advancing.
func MovePiston(p *Piston, power float64) {
	if p.Position < 0 {
		p.Multiplier = 1
	}
	p.Position += power * float64(p.Multiplier) / PistonScale
}

// ReadyToGoBack reports whether an advancing piston passed the threshold.
func ReadyToGoBack(p Piston) bool {
	return p.Advancing() && p.Position > PistonThreshold
}

// GoBack reverses the piston.
func GoBack(p *Piston) {
	p.Multiplier = -1
}
