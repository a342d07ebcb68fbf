package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skyfall-arcade/skyfall/internal/core"
)

// keyMsg builds a key message whose String() form matches the binding table.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestHoldTrackerFreshPressAfterQuietGap(t *testing.T) {
	h := newHoldTracker()
	now := time.Now()

	if !h.observe(core.ActionLeft, now) {
		t.Error("first event should be a fresh press")
	}
	if !h.observe(core.ActionLeft, now.Add(repeatWindow+time.Millisecond)) {
		t.Error("event after a quiet gap should be a fresh press")
	}
}

func TestHoldTrackerAutorepeatIsNotAPress(t *testing.T) {
	h := newHoldTracker()
	now := time.Now()

	h.observe(core.ActionLeft, now)
	if h.observe(core.ActionLeft, now.Add(50*time.Millisecond)) {
		t.Error("autorepeat inside the window must not count as a fresh press")
	}
}

func TestHoldTrackerAppliesActiveHolds(t *testing.T) {
	h := newHoldTracker()
	now := time.Now()
	h.observe(core.ActionRight, now)

	frame := core.NewInputFrame()
	h.apply(&frame, now.Add(100*time.Millisecond))

	if !frame.Held(core.ActionRight) {
		t.Error("Right should still be held inside the repeat window")
	}
	if frame.Pressed(core.ActionRight) {
		t.Error("apply must synthesize holds, not press edges")
	}
}

func TestHoldTrackerExpiresStaleHolds(t *testing.T) {
	h := newHoldTracker()
	now := time.Now()
	h.observe(core.ActionFire, now)

	frame := core.NewInputFrame()
	h.apply(&frame, now.Add(repeatWindow+time.Millisecond))

	if frame.Held(core.ActionFire) {
		t.Error("hold should end once repeats stop arriving")
	}
}

func TestHoldTrackerReset(t *testing.T) {
	h := newHoldTracker()
	now := time.Now()
	h.observe(core.ActionLeft, now)
	h.reset()

	frame := core.NewInputFrame()
	h.apply(&frame, now)
	if frame.Held(core.ActionLeft) {
		t.Error("reset must drop all hold state")
	}
}

func TestMapKeyQuitKeys(t *testing.T) {
	km := NewKeyMapper()
	for _, k := range []string{"q", "ctrl+c"} {
		if _, isQuit := km.MapKey(keyMsg(k)); !isQuit {
			t.Errorf("%q should map to quit", k)
		}
	}
}

func TestMapKeyMovementAndFire(t *testing.T) {
	km := NewKeyMapper()
	cases := map[string]core.Action{
		"a":     core.ActionLeft,
		"left":  core.ActionLeft,
		"d":     core.ActionRight,
		"right": core.ActionRight,
		" ":     core.ActionFire,
		"o":     core.ActionOvercharge,
		"p":     core.ActionPause,
		"r":     core.ActionRestart,
	}
	for key, want := range cases {
		got, isQuit := km.MapKey(keyMsg(key))
		if isQuit {
			t.Errorf("%q should not quit", key)
		}
		if got != want {
			t.Errorf("%q mapped to %v, expected %v", key, got, want)
		}
	}
}
