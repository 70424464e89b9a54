package core

import "strings"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action uint8

const (
	ActionNone      Action = iota
	ActionLeft             // move-left
	ActionRight            // move-right
	ActionUp               // move-up
	ActionDown             // move-down
	ActionPrimary          // fire, launch, flap
	ActionSecondary        // alternate action
	ActionStart            // start / restart when the run is not active
	ActionPause            // pause toggle
	ActionQuit             // leave the game
	actionCount
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionLeft:      "move-left",
	ActionRight:     "move-right",
	ActionUp:        "move-up",
	ActionDown:      "move-down",
	ActionPrimary:   "primary-action",
	ActionSecondary: "secondary-action",
	ActionStart:     "start",
	ActionPause:     "pause",
	ActionQuit:      "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction maps a config name to an Action.
// Unrecognised names return ActionNone and false.
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := ActionLeft; i < actionCount; i++ {
		if actionNames[i] == name {
			return i, true
		}
	}
	return ActionNone, false
}

// ActionSet is a bitmask of actions.
type ActionSet uint16

// Has reports whether a is in the set.
func (s ActionSet) Has(a Action) bool {
	if a == ActionNone || a >= actionCount {
		return false
	}
	return s&(1<<a) != 0
}

// With returns the set with a added. Out-of-range actions are ignored.
func (s ActionSet) With(a Action) ActionSet {
	if a == ActionNone || a >= actionCount {
		return s
	}
	return s | 1<<a
}

// Without returns the set with a removed.
func (s ActionSet) Without(a Action) ActionSet {
	if a >= actionCount {
		return s
	}
	return s &^ (1 << a)
}

// InputFrame is the input snapshot a simulation tick observes.
// Held is level-triggered; Pressed holds edges that occurred since the previous tick.
type InputFrame struct {
	Held    ActionSet
	Pressed ActionSet
	Pointer Vec2 // pointer in simulation coordinates
	Aiming  bool // whether Pointer has ever been set
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// IsHeld reports whether the action is currently held.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held.Has(a)
}

// WasPressed reports whether the action was pressed since the last tick.
func (f InputFrame) WasPressed(a Action) bool {
	return f.Pressed.Has(a)
}

// Press marks an action as both pressed and held. Used by tests and scripted input.
func (f *InputFrame) Press(a Action) {
	f.Pressed = f.Pressed.With(a)
	f.Held = f.Held.With(a)
}

// Hold marks an action as held without an edge.
func (f *InputFrame) Hold(a Action) {
	f.Held = f.Held.With(a)
}
