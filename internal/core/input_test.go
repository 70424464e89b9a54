package core

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		expected Action
		ok       bool
	}{
		{"move-left", ActionLeft, true},
		{" Primary-Action ", ActionPrimary, true},
		{"start", ActionStart, true},
		{"teleport", ActionNone, false},
		{"none", ActionNone, false},
	}

	for _, tc := range tests {
		got, ok := ParseAction(tc.name)
		if got != tc.expected || ok != tc.ok {
			t.Errorf("ParseAction(%q) = %v, %v; expected %v, %v", tc.name, got, ok, tc.expected, tc.ok)
		}
	}
}

func TestActionSet(t *testing.T) {
	var s ActionSet
	s = s.With(ActionLeft).With(ActionPrimary)

	if !s.Has(ActionLeft) || !s.Has(ActionPrimary) {
		t.Error("set should contain added actions")
	}
	if s.Has(ActionRight) {
		t.Error("set should not contain ActionRight")
	}
	if s.With(ActionNone) != s || s.With(Action(200)) != s {
		t.Error("invalid actions must be ignored")
	}
	if s.Without(ActionLeft).Has(ActionLeft) {
		t.Error("Without should remove the action")
	}
}

func TestInputFramePress(t *testing.T) {
	f := NewInputFrame()
	f.Press(ActionPrimary)
	f.Hold(ActionUp)

	if !f.WasPressed(ActionPrimary) || !f.IsHeld(ActionPrimary) {
		t.Error("Press should set both edge and level")
	}
	if f.WasPressed(ActionUp) || !f.IsHeld(ActionUp) {
		t.Error("Hold should only set level")
	}
}
