package core

import "testing"

func TestInputFramePressImpliesHeld(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionLeft)

	if !f.Pressed(ActionLeft) {
		t.Error("Pressed(ActionLeft) should be true after Press")
	}
	if !f.Held(ActionLeft) {
		t.Error("Held(ActionLeft) should be true after Press")
	}
}

func TestInputFrameHoldWithoutPress(t *testing.T) {
	f := NewInputFrame()
	f.Hold(ActionRight)

	if f.Pressed(ActionRight) {
		t.Error("Hold should not register a press edge")
	}
	if !f.Held(ActionRight) {
		t.Error("Held(ActionRight) should be true after Hold")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionFire)
	f.Hold(ActionLeft)
	f.Clear()

	if f.Pressed(ActionFire) || f.Held(ActionFire) || f.Held(ActionLeft) {
		t.Error("Clear should remove all presses and holds")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionFire)

	clone := f.Clone()
	f.Clear()

	if !clone.Pressed(ActionFire) {
		t.Error("Clone should be independent of the original")
	}
}
