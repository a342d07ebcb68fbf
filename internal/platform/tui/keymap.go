package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skyfall-arcade/skyfall/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ":
		return core.ActionFire, false
	case "o":
		return core.ActionOvercharge, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionScoreboard
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// repeatWindow is how long after the last key event an action still counts
// as held. Terminals report no key-release events, only autorepeat, so a
// hold ends when repeats stop arriving within this window.
const repeatWindow = 200 * time.Millisecond

// heldActions are the level-triggered actions worth synthesizing holds for.
// Everything else is edge-only.
var heldActions = [...]core.Action{core.ActionLeft, core.ActionRight, core.ActionFire}

// holdTracker synthesizes key-hold state from discrete key events. A key
// event after a quiet period is a fresh press; events inside the repeat
// window only extend the hold. The distinction feeds double-tap dash
// detection, which must not fire on autorepeat.
type holdTracker struct {
	lastSeen map[core.Action]time.Time
}

func newHoldTracker() *holdTracker {
	return &holdTracker{lastSeen: make(map[core.Action]time.Time)}
}

// observe records a key event and reports whether it is a fresh press.
func (h *holdTracker) observe(a core.Action, now time.Time) bool {
	last, seen := h.lastSeen[a]
	h.lastSeen[a] = now
	return !seen || now.Sub(last) > repeatWindow
}

// apply marks all currently held actions on the frame.
func (h *holdTracker) apply(frame *core.InputFrame, now time.Time) {
	for _, a := range heldActions {
		if last, ok := h.lastSeen[a]; ok && now.Sub(last) <= repeatWindow {
			frame.Hold(a)
		}
	}
}

// reset drops all hold state, e.g. when leaving a game.
func (h *holdTracker) reset() {
	clear(h.lastSeen)
}
