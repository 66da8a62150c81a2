package core

import "testing"

func TestInputFrameCountsPresses(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Fatal("empty frame should have no jump")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	f.Set(ActionPause)

	if got := f.Count(ActionJump); got != 2 {
		t.Errorf("Count(Jump) = %d, expected 2", got)
	}
	if !f.Has(ActionPause) {
		t.Error("frame should have pause")
	}

	f.Clear()
	if f.Count(ActionJump) != 0 || f.Has(ActionPause) {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionRestart)
	if f.Count(ActionRestart) != 1 {
		t.Error("Set on zero frame should allocate")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
