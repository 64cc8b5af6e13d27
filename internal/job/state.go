package job

// State is a job's position in its lifecycle.
type State string

const (
	StateValidating   State = "validating"
	StateAcquiring    State = "acquiring"
	StateTransforming State = "transforming"
	StateDelivering   State = "delivering"
	StateCleaningUp   State = "cleaning_up"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

var transitions = map[State][]State{
	StateValidating:   {StateAcquiring, StateCleaningUp},
	StateAcquiring:    {StateTransforming, StateCleaningUp},
	StateTransforming: {StateDelivering, StateCleaningUp},
	StateDelivering:   {StateCleaningUp},
	StateCleaningUp:   {StateDone, StateFailed},
}

// CanTransition reports whether a job may move from one state to the next.
// Every failure passes through StateCleaningUp before StateFailed.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the state ends the job.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

func (s State) String() string {
	return string(s)
}
