package checkout

// State is the checkout flow's position in its linear state machine.
// The only way back from Submitting to Ready is a failed submission;
// Terminal is never left.
type State string

const (
	StateLoading    State = "LOADING"
	StateReady      State = "READY"
	StateSubmitting State = "SUBMITTING"
	StateTerminal   State = "TERMINAL"
)

// IsTerminal reports whether the flow has completed.
func (s State) IsTerminal() bool {
	return s == StateTerminal
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
