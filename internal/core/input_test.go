package core

import "testing"

func TestInputFrameCounts(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionLeft)
	f.Set(ActionHardDrop)

	if got := f.Count(ActionLeft); got != 2 {
		t.Errorf("Count(Left) = %d, expected 2", got)
	}
	if !f.Has(ActionHardDrop) {
		t.Error("Has(HardDrop) should be true")
	}
	if f.Has(ActionHold) {
		t.Error("Has(Hold) should be false")
	}

	f.Clear()
	if !f.Empty() || f.Has(ActionLeft) {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionPause) {
		t.Error("zero frame should report no actions")
	}
	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Set on zero frame should allocate and record")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionRotateCCW, "RotateCCW"},
		{ActionHold, "Hold"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
