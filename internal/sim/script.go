package sim

import "github.com/san-kum/arena/internal/dynamo"

// ScriptedEvent is a pointer event injected before the given frame ticks.
type ScriptedEvent struct {
	Frame int
	Event PointerEvent
}

// Script is a replayable gesture list, kept in frame order.
type Script []ScriptedEvent

// Slingshot presses at from and releases at to, both before frame ticks.
func Slingshot(frame int, from, to dynamo.Vec2) Script {
	return Script{
		{Frame: frame, Event: Press(from.X, from.Y)},
		{Frame: frame, Event: Release(to.X, to.Y)},
	}
}

// At returns the events scheduled for frame, in script order.
func (s Script) At(frame int) []PointerEvent {
	var out []PointerEvent
	for _, e := range s {
		if e.Frame == frame {
			out = append(out, e.Event)
		}
	}
	return out
}
