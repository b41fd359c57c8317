package uciengine

import "fmt"

// State is a node in the engine driver's lifecycle state machine
// (§4.11): UNLOADED -> LOADED -> IDLE -> READY -> THINKING -> IDLE, with
// an unconditional transition back to UNLOADED from any state on unload.
type State int

const (
	Unloaded State = iota
	Loaded
	Idle
	Ready
	Thinking
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Thinking:
		return "thinking"
	}
	return "unknown"
}

// decreaseState walks the state machine back one step (Thinking to Ready,
// Ready to Idle, Idle to Loaded, Loaded to Unloaded). It never decreases
// past Unloaded.
func decreaseState(s State) State {
	switch s {
	case Thinking:
		return Ready
	case Ready:
		return Idle
	case Idle:
		return Loaded
	case Loaded:
		return Unloaded
	}
	return Unloaded
}

// canTransition reports whether moving from `from` to `to` is a legal
// forward step in the lifecycle, or the universal unload escape hatch.
func canTransition(from, to State) bool {
	if to == Unloaded {
		return true
	}
	switch from {
	case Unloaded:
		return to == Loaded
	case Loaded:
		return to == Idle
	case Idle:
		return to == Ready || to == Idle
	case Ready:
		return to == Thinking || to == Idle
	case Thinking:
		return to == Idle
	}
	return false
}

// stateError reports an operation attempted from a state that forbids it.
func stateError(op string, s State) error {
	return fmt.Errorf("uciengine: cannot %s while in state %s", op, s)
}
