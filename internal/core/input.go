package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionRight
	ActionDown
	ActionLeft
	ActionInteract // pick up or take from a dispenser
	ActionDrop
	ActionTrigger // fire the earliest remote bomb
	ActionPause
	ActionRestart
	ActionNext // advance after a won level
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionInteract:
		return "Interact"
	case ActionDrop:
		return "Drop"
	case ActionTrigger:
		return "Trigger"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions pressed between two simulation ticks.
// Actions keep the order they arrived in; repeats are dropped.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || f.Has(a) {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, v := range f.Actions {
		if v == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
