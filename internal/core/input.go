package core

// Action represents a semantic harness action, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionRotate              // R - cycle the connection side (wrench)
	ActionHeatUp              // + / up - raise the fixed heat level
	ActionHeatDown            // - / down - lower the fixed heat level
	ActionAddFuel             // F - add fuel to fuel-burning engines
	ActionToggleSignal        // S - toggle the redstone signal
	ActionPause               // P - pause/unpause ticking
	ActionReset               // X - replace the engine with a fresh one
	ActionQuit                // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotate:
		return "Rotate"
	case ActionHeatUp:
		return "HeatUp"
	case ActionHeatDown:
		return "HeatDown"
	case ActionAddFuel:
		return "AddFuel"
	case ActionToggleSignal:
		return "ToggleSignal"
	case ActionPause:
		return "Pause"
	case ActionReset:
		return "Reset"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
