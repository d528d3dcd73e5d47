package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Shift piece one column left
	ActionRight            // Shift piece one column right
	ActionSoftDrop         // Move piece one row down, scoring 1 point
	ActionRotateCW         // Rotate clockwise
	ActionRotateCCW        // Rotate counter-clockwise
	ActionHardDrop         // Drop to the floor and lock
	ActionHold             // Swap with the hold slot
	ActionConfirm          // Enter - start a game from the idle screen
	ActionRestart          // R key - restart game after game over
	ActionPause            // P, Escape - pause/unpause game
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHardDrop:
		return "HardDrop"
	case ActionHold:
		return "Hold"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
// Repeated key presses within a tick are counted so auto-repeat is not lost
// when the terminal delivers several events between ticks.
type InputFrame struct {
	Actions map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]int),
	}
}

// Set records one occurrence of an action for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]int)
	}
	f.Actions[a]++
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Count(a) > 0
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	if f.Actions == nil {
		return 0
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}
