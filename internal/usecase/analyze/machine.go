package analyze

import "time"

// StateKind names a state of the retry loop.
type StateKind int

const (
	StateIdle StateKind = iota
	StateAttempting
	StateSucceeded
	StateBlocked
	StateRetryWait
	StateExhausted
	StateFailed
)

// String returns a human-readable name for the state.
func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateAttempting:
		return "attempting"
	case StateSucceeded:
		return "succeeded"
	case StateBlocked:
		return "blocked"
	case StateRetryWait:
		return "retry-wait"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is one position in the retry loop's lifecycle. Attempt is 1-based
// and meaningful for Attempting and RetryWait; Wait is set only for
// RetryWait; Message only for Failed.
type State struct {
	Kind    StateKind
	Attempt int
	Wait    time.Duration
	Message string
}

// Terminal reports whether no further remote call will be made.
func (s State) Terminal() bool {
	switch s.Kind {
	case StateSucceeded, StateBlocked, StateExhausted, StateFailed:
		return true
	}
	return false
}

// Start returns the state for the first attempt.
func Start() State {
	return State{Kind: StateAttempting, Attempt: 1}
}

// Backoff returns the wait inserted after attempt n hits a rate limit.
// The sequence is linear in the attempt index: base*2 after attempt 1,
// base*3 after attempt 2, and so on, so it is strictly increasing.
func Backoff(attempt int, base time.Duration) time.Duration {
	return base * time.Duration(attempt+1)
}

// Advance computes the state following a finished attempt. A nil callErr
// means the attempt produced a result. The function is pure: callers own
// the actual remote call, the sleep, and all reporting.
func Advance(s State, maxAttempts int, base time.Duration, callErr error) State {
	if s.Kind != StateAttempting {
		return s
	}

	if callErr == nil {
		return State{Kind: StateSucceeded, Attempt: s.Attempt}
	}

	switch Classify(callErr) {
	case KindBlocked:
		return State{Kind: StateBlocked, Attempt: s.Attempt}
	case KindRateLimit:
		if s.Attempt < maxAttempts {
			return State{
				Kind:    StateRetryWait,
				Attempt: s.Attempt,
				Wait:    Backoff(s.Attempt, base),
			}
		}
		return State{Kind: StateExhausted, Attempt: s.Attempt}
	default:
		return State{Kind: StateFailed, Attempt: s.Attempt, Message: callErr.Error()}
	}
}

// Resume moves from a retry wait into the next attempt.
func Resume(s State) State {
	if s.Kind != StateRetryWait {
		return s
	}
	return State{Kind: StateAttempting, Attempt: s.Attempt + 1}
}
