package review

import "skelreview/internal/config"

// Event is an operator intent.
type Event int

// Operator events.
const (
	EventNone Event = iota
	EventForward
	EventBackward
	EventExclude
	EventInclude
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventForward:
		return "forward"
	case EventBackward:
		return "backward"
	case EventExclude:
		return "exclude"
	case EventInclude:
		return "include"
	case EventQuit:
		return "quit"
	default:
		return "none"
	}
}

// keyInterrupt is always bound to quit so a raw-mode terminal can be left.
const keyInterrupt = "ctrl+c"

// KeyMap translates key names reported by the key source into events.
type KeyMap map[string]Event

// NewKeyMap builds the map from configured bindings.
func NewKeyMap(keys config.Keys) KeyMap {
	return KeyMap{
		keys.Backward: EventBackward,
		keys.Forward:  EventForward,
		keys.Exclude:  EventExclude,
		keys.Include:  EventInclude,
		keys.Quit:     EventQuit,
		keyInterrupt:  EventQuit,
	}
}

// Translate returns the event for key; unknown keys are EventNone.
func (m KeyMap) Translate(key string) Event {
	if key == "" {
		return EventNone
	}
	if ev, ok := m[key]; ok {
		return ev
	}
	return EventNone
}
