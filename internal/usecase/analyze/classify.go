package analyze

import (
	"errors"
	"net/http"
	"strings"

	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
)

// Kind classifies a failed remote call for the retry state machine.
type Kind int

const (
	// KindRateLimit means the service refused the call for frequency
	// reasons; the only classification that triggers backoff.
	KindRateLimit Kind = iota

	// KindBlocked means the service declined to answer for content-policy
	// reasons; terminal regardless of remaining attempts.
	KindBlocked

	// KindTransient covers every other failure; terminal, not retried.
	KindTransient
)

// Classify maps a remote call error to its retry classification.
//
// Typed errors from the HTTP adapter are matched first. The text match is
// a deliberate heuristic boundary: Gemini quota errors carry HTTP 429 and
// a message mentioning "quota", and transports that lose the typed error
// still surface those markers in the string. Swapping the rule only
// touches this function, never the state machine.
func Classify(err error) Kind {
	var apiErr *llmhttp.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case llmhttp.ErrTypeContentFiltered:
			return KindBlocked
		case llmhttp.ErrTypeRateLimit:
			return KindRateLimit
		}
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return KindRateLimit
		}
	}

	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "quota") {
		return KindRateLimit
	}
	return KindTransient
}
