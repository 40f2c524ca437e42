package analyze

import (
	"time"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// Reporter receives progress events from an analysis run. It exists for
// the console channel only: implementations must not influence control
// flow, and every run produces the same outcome with NopReporter.
type Reporter interface {
	// ExtractionStarted fires before the extractor reads the file.
	ExtractionStarted(path string, format domain.Format)

	// ExtractionFinished fires with the extracted character count.
	ExtractionFinished(chars int)

	// Truncated fires when document text was cut to fit the limit.
	Truncated(originalChars, maxChars int)

	// PromptBuilt fires once the prompt is assembled. estimatedTokens is
	// zero when no estimator is configured.
	PromptBuilt(promptChars, estimatedTokens int)

	// AttemptStarted fires before each remote call.
	AttemptStarted(attempt, maxAttempts int)

	// RateLimited fires when an attempt hit a rate limit and a wait begins.
	RateLimited(attempt int, wait time.Duration)

	// Countdown fires once per whole second remaining in a backoff wait.
	Countdown(remaining time.Duration)

	// Succeeded fires with the reported token usage and estimated cost.
	Succeeded(totalTokens int, cost float64)

	// Blocked fires when the service declined for content-policy reasons.
	Blocked()

	// Exhausted fires when every attempt was rate limited.
	Exhausted(maxAttempts int, suggestions []string)

	// Failed fires on a terminal non-rate-limit call failure.
	Failed(message string)
}

// NopReporter discards all progress events.
type NopReporter struct{}

func (NopReporter) ExtractionStarted(string, domain.Format) {}
func (NopReporter) ExtractionFinished(int)                  {}
func (NopReporter) Truncated(int, int)                      {}
func (NopReporter) PromptBuilt(int, int)                    {}
func (NopReporter) AttemptStarted(int, int)                 {}
func (NopReporter) RateLimited(int, time.Duration)          {}
func (NopReporter) Countdown(time.Duration)                 {}
func (NopReporter) Succeeded(int, float64)                  {}
func (NopReporter) Blocked()                                {}
func (NopReporter) Exhausted(int, []string)                 {}
func (NopReporter) Failed(string)                           {}
