package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
	"github.com/VenkatDaruru/doc-analyzer/internal/usecase/analyze"
)

// ConsoleReporter renders analysis progress as human-readable status
// lines. It is purely presentational: the controller produces identical
// outcomes with reporting suppressed.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to the given stream.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) ExtractionStarted(path string, format domain.Format) {
	fmt.Fprintf(r.out, "Extracting text (%s format)...\n", format)
}

func (r *ConsoleReporter) ExtractionFinished(chars int) {
	fmt.Fprintf(r.out, "Extracted %d characters\n", chars)
}

func (r *ConsoleReporter) Truncated(originalChars, maxChars int) {
	fmt.Fprintf(r.out, "Document is large (%d chars); truncating to first %d characters\n", originalChars, maxChars)
}

func (r *ConsoleReporter) PromptBuilt(promptChars, estimatedTokens int) {
	if estimatedTokens > 0 {
		fmt.Fprintf(r.out, "Prompt ready (%d chars, ~%d tokens)\n", promptChars, estimatedTokens)
	}
}

func (r *ConsoleReporter) AttemptStarted(attempt, maxAttempts int) {
	fmt.Fprintf(r.out, "\nAnalyzing with Gemini (attempt %d/%d)...\n", attempt, maxAttempts)
}

func (r *ConsoleReporter) RateLimited(attempt int, wait time.Duration) {
	fmt.Fprintf(r.out, "Rate limit hit; waiting %.0f seconds before retrying\n", wait.Seconds())
	fmt.Fprintln(r.out, "(This is normal - just a speed limit, not a billing issue)")
}

func (r *ConsoleReporter) Countdown(remaining time.Duration) {
	fmt.Fprintf(r.out, "  Retrying in %.0f seconds...\r", remaining.Seconds())
}

func (r *ConsoleReporter) Succeeded(totalTokens int, cost float64) {
	fmt.Fprintln(r.out, "Analysis complete")
	fmt.Fprintf(r.out, "Tokens used: %d\n", totalTokens)
	fmt.Fprintf(r.out, "Cost: $%.6f\n", cost)
}

func (r *ConsoleReporter) Blocked() {
	fmt.Fprintln(r.out, "Analysis blocked for safety reasons")
}

func (r *ConsoleReporter) Exhausted(maxAttempts int, suggestions []string) {
	fmt.Fprintf(r.out, "\nStill hitting rate limits after %d attempts\n", maxAttempts)
	if len(suggestions) > 0 {
		fmt.Fprintln(r.out, "Suggestions:")
		for i, s := range suggestions {
			fmt.Fprintf(r.out, "  %d. %s\n", i+1, s)
		}
	}
}

func (r *ConsoleReporter) Failed(message string) {
	fmt.Fprintf(r.out, "Error during analysis: %s\n", message)
}

// Compile-time interface compliance check
var _ analyze.Reporter = (*ConsoleReporter)(nil)
