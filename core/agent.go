package core

// Policy picks the next process to run given the action values of the current state.
// values always has one entry per process; unseen states are passed as all zeros.
type Policy interface {
	PickAction(state State, values []float64, epsilon float64) Action
}
