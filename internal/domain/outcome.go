package domain

// OutcomeKind discriminates the terminal result of an analysis run.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeBlocked
	OutcomeRateLimited
	OutcomeTransientError
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeRateLimited:
		return "rate limited"
	case OutcomeTransientError:
		return "transient error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of exactly one analysis run.
// Only the fields belonging to the constructing variant are populated;
// use the constructors below rather than building an Outcome by hand.
type Outcome struct {
	Kind OutcomeKind

	// Success fields
	Text          string
	TokenCount    int
	EstimatedCost float64

	// RateLimited fields
	AttemptsExhausted bool

	// TransientError fields
	Message string
}

// Success builds an outcome for a completed analysis.
func Success(text string, tokenCount int, estimatedCost float64) Outcome {
	return Outcome{
		Kind:          OutcomeSuccess,
		Text:          text,
		TokenCount:    tokenCount,
		EstimatedCost: estimatedCost,
	}
}

// Blocked builds an outcome for a content-policy rejection.
func Blocked() Outcome {
	return Outcome{Kind: OutcomeBlocked}
}

// RateLimited builds an outcome for a run stopped by rate limiting.
func RateLimited(attemptsExhausted bool) Outcome {
	return Outcome{Kind: OutcomeRateLimited, AttemptsExhausted: attemptsExhausted}
}

// TransientError builds an outcome for a non-retryable call failure.
func TransientError(message string) Outcome {
	return Outcome{Kind: OutcomeTransientError, Message: message}
}
