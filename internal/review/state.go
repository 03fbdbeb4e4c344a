package review

import "fmt"

// StateKind names the session states.
type StateKind int

// Session states.
const (
	StateLoading StateKind = iota
	StatePlaying
	StateStopped
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "stopped"
	}
}

// State is the position of a session. Frame is meaningful only while playing.
type State struct {
	Kind  StateKind
	Clip  int
	Frame int
}

// Loading returns the state that loads clip i.
func Loading(i int) State { return State{Kind: StateLoading, Clip: i} }

// Playing returns the state showing frame f of clip i.
func Playing(i, f int) State { return State{Kind: StatePlaying, Clip: i, Frame: f} }

// Stopped is the terminal state.
func Stopped() State { return State{Kind: StateStopped} }

func (s State) String() string {
	switch s.Kind {
	case StateLoading:
		return fmt.Sprintf("loading(%d)", s.Clip)
	case StatePlaying:
		return fmt.Sprintf("playing(%d, %d)", s.Clip, s.Frame)
	default:
		return "stopped"
	}
}

// next returns the state an event moves Playing(i, f) to. Exclude, include
// and none keep playing; the frame advance is applied by the caller.
func next(s State, ev Event) State {
	switch ev {
	case EventForward:
		return Loading(s.Clip + 1)
	case EventBackward:
		return Loading(max(s.Clip-1, 0))
	case EventQuit:
		return Stopped()
	default:
		return s
	}
}
