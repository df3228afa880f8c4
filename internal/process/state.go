package process

// State represents the lifecycle state of a Process within one simulation run.
type State string

const (
	StatePending   State = "PENDING"
	StateRunning   State = "RUNNING"
	StateCompleted State = "COMPLETED"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true if the process has finished all of its work.
func (s State) IsTerminal() bool {
	return s == StateCompleted
}

// ValidTransitions defines the allowed state transitions during a run.
// Resetting a set bypasses these and puts every process back to PENDING.
var ValidTransitions = map[State][]State{
	StatePending: {StateRunning},
	StateRunning: {StateCompleted},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range ValidTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
