package reload

import "sync/atomic"

// State is the reload state of a controller.
type State int32

const (
	Idle State = iota
	Reloading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// StateMachine is the two-state Idle/Reloading machine. The zero value is Idle.
type StateMachine struct {
	v atomic.Int32
}

// TryBegin moves Idle to Reloading. It returns false, and changes nothing, when a
// reload is already in progress.
func (m *StateMachine) TryBegin() bool {
	return m.v.CompareAndSwap(int32(Idle), int32(Reloading))
}

// Finish moves Reloading back to Idle. It returns false if the machine was Idle.
func (m *StateMachine) Finish() bool {
	return m.v.CompareAndSwap(int32(Reloading), int32(Idle))
}

// Current returns the present state.
func (m *StateMachine) Current() State {
	return State(m.v.Load())
}
