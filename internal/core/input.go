package core

// Action represents a semantic game action, abstracted from physical key
// presses. The simulation works with high-level intents rather than raw keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move catcher left
	ActionRight            // D, Right arrow - move catcher right
	ActionFire             // Space - fire / charge the weapon
	ActionOvercharge       // O - trigger the overcharge window when the meter is full
	ActionConfirm          // Enter - confirm selection in menu
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R - restart after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
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
	case ActionFire:
		return "Fire"
	case ActionOvercharge:
		return "Overcharge"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one simulation tick.
//
// Presses are edge-triggered: an action is pressed on the tick the key event
// arrived. Holds are level-triggered: the platform keeps an action held while
// the key keeps repeating, and clears it when repeats stop. The distinction
// matters for double-tap dash detection (edges) and for movement and weapon
// charging (levels). Terminals report no key-release events, so "released"
// is synthesized by the platform as the first tick an action stops being held.
type InputFrame struct {
	pressed map[Action]bool
	held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		pressed: make(map[Action]bool),
		held:    make(map[Action]bool),
	}
}

// Press marks an action as newly pressed this tick. A pressed action is also
// considered held.
func (f *InputFrame) Press(a Action) {
	if f.pressed == nil {
		f.pressed = make(map[Action]bool)
	}
	if f.held == nil {
		f.held = make(map[Action]bool)
	}
	f.pressed[a] = true
	f.held[a] = true
}

// Hold marks an action as held this tick without a fresh press edge.
func (f *InputFrame) Hold(a Action) {
	if f.held == nil {
		f.held = make(map[Action]bool)
	}
	f.held[a] = true
}

// Pressed returns true if the action was newly pressed this tick.
func (f InputFrame) Pressed(a Action) bool {
	return f.pressed[a]
}

// Held returns true if the action is held this tick.
func (f InputFrame) Held(a Action) bool {
	return f.held[a]
}

// Clear resets all presses and holds for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.pressed {
		delete(f.pressed, k)
	}
	for k := range f.held {
		delete(f.held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.pressed {
		clone.pressed[k] = v
	}
	for k, v := range f.held {
		clone.held[k] = v
	}
	return clone
}
