package analyze_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
	"github.com/VenkatDaruru/doc-analyzer/internal/usecase/analyze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns one scripted result per call, in order.
type scriptedGenerator struct {
	results []scriptedResult
	prompts []string
}

type scriptedResult struct {
	gen analyze.Generation
	err error
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (analyze.Generation, error) {
	call := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if call >= len(g.results) {
		return analyze.Generation{}, errors.New("unexpected extra call")
	}
	r := g.results[call]
	return r.gen, r.err
}

func (g *scriptedGenerator) calls() int { return len(g.prompts) }

// textExtractor reads the file directly, standing in for the real adapter.
type textExtractor struct {
	calls int
	err   error
}

func (e *textExtractor) Extract(path string, _ domain.Format) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// recordingSleep captures every requested sleep without waiting.
type recordingSleep struct {
	slept []time.Duration
	err   error
}

func (s *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.slept = append(s.slept, d)
	return nil
}

func (s *recordingSleep) total() time.Duration {
	var sum time.Duration
	for _, d := range s.slept {
		sum += d
	}
	return sum
}

// recordingReporter captures the event sequence by name.
type recordingReporter struct {
	analyze.NopReporter
	events      []string
	waits       []time.Duration
	suggestions []string
}

func (r *recordingReporter) AttemptStarted(attempt, maxAttempts int) {
	r.events = append(r.events, "attempt")
}

func (r *recordingReporter) RateLimited(attempt int, wait time.Duration) {
	r.events = append(r.events, "rate-limited")
	r.waits = append(r.waits, wait)
}

func (r *recordingReporter) Succeeded(totalTokens int, cost float64) {
	r.events = append(r.events, "succeeded")
}

func (r *recordingReporter) Exhausted(maxAttempts int, suggestions []string) {
	r.events = append(r.events, "exhausted")
	r.suggestions = suggestions
}

func (r *recordingReporter) Blocked() {
	r.events = append(r.events, "blocked")
}

func (r *recordingReporter) Failed(message string) {
	r.events = append(r.events, "failed")
}

func writeTempDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestController(gen *scriptedGenerator, sleep *recordingSleep, reporter analyze.Reporter) *analyze.Controller {
	return analyze.NewController(analyze.ControllerDeps{
		Extractor: &textExtractor{},
		Generator: gen,
		Reporter:  reporter,
		Sleep:     sleep.sleep,
		Settings: analyze.Settings{
			MaxAttempts: 3,
			BackoffBase: 60 * time.Second,
		},
	})
}

func TestAnalyzeSucceedsFirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{results: []scriptedResult{
		{gen: analyze.Generation{Text: "1. DOCUMENT TYPE: memo", TotalTokens: 1000}},
	}}
	sleep := &recordingSleep{}
	ctrl := newTestController(gen, sleep, nil)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "1. DOCUMENT TYPE: memo", outcome.Text)
	assert.Equal(t, 1000, outcome.TokenCount)
	assert.InDelta(t, 0.00015, outcome.EstimatedCost, 1e-12)
	assert.Equal(t, 1, gen.calls())
	assert.Empty(t, sleep.slept)
}

func TestAnalyzeRetriesThroughRateLimits(t *testing.T) {
	rateLimited := llmhttp.NewRateLimitError("quota exceeded")
	gen := &scriptedGenerator{results: []scriptedResult{
		{err: rateLimited},
		{err: rateLimited},
		{gen: analyze.Generation{Text: "analysis", TotalTokens: 1000}},
	}}
	sleep := &recordingSleep{}
	reporter := &recordingReporter{}
	ctrl := newTestController(gen, sleep, reporter)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, 1000, outcome.TokenCount)
	assert.Equal(t, 3, gen.calls())

	// Linear backoff: 120s after attempt 1, 180s after attempt 2.
	assert.Equal(t, []time.Duration{120 * time.Second, 180 * time.Second}, reporter.waits)
	assert.Equal(t, 300*time.Second, sleep.total())
	assert.Equal(t,
		[]string{"attempt", "rate-limited", "attempt", "rate-limited", "attempt", "succeeded"},
		reporter.events)
}

func TestAnalyzeExhaustsAfterMaxAttempts(t *testing.T) {
	rateLimited := llmhttp.NewRateLimitError("quota exceeded")
	gen := &scriptedGenerator{results: []scriptedResult{
		{err: rateLimited}, {err: rateLimited}, {err: rateLimited},
	}}
	sleep := &recordingSleep{}
	reporter := &recordingReporter{}
	ctrl := newTestController(gen, sleep, reporter)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRateLimited, outcome.Kind)
	assert.True(t, outcome.AttemptsExhausted)
	assert.Equal(t, 3, gen.calls())

	// No wait after the final failed attempt.
	assert.Equal(t, 300*time.Second, sleep.total())
	assert.Equal(t, analyze.RemediationSuggestions(), reporter.suggestions)
}

func TestAnalyzeBlockedIsTerminalOnFirstAttempt(t *testing.T) {
	gen := &scriptedGenerator{results: []scriptedResult{
		{err: llmhttp.NewContentFilteredError("response contained no candidates")},
	}}
	sleep := &recordingSleep{}
	reporter := &recordingReporter{}
	ctrl := newTestController(gen, sleep, reporter)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeBlocked, outcome.Kind)
	assert.Equal(t, 1, gen.calls())
	assert.Empty(t, sleep.slept)
	assert.Equal(t, []string{"attempt", "blocked"}, reporter.events)
}

func TestAnalyzeTransientErrorIsNotRetried(t *testing.T) {
	gen := &scriptedGenerator{results: []scriptedResult{
		{err: llmhttp.NewAuthenticationError("invalid key")},
	}}
	sleep := &recordingSleep{}
	ctrl := newTestController(gen, sleep, nil)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTransientError, outcome.Kind)
	assert.Contains(t, outcome.Message, "invalid key")
	assert.Equal(t, 1, gen.calls())
	assert.Empty(t, sleep.slept)
}

func TestAnalyzeMissingFileMakesNoCalls(t *testing.T) {
	gen := &scriptedGenerator{}
	ctrl := newTestController(gen, &recordingSleep{}, nil)

	_, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   filepath.Join(t.TempDir(), "missing.txt"),
		Format: domain.FormatText,
	})

	var vErr *analyze.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, analyze.ReasonFileNotFound, vErr.Reason)
	assert.Equal(t, 0, gen.calls())
}

func TestAnalyzeUnsupportedFormatMakesNoCalls(t *testing.T) {
	gen := &scriptedGenerator{}
	extractor := &textExtractor{}
	ctrl := analyze.NewController(analyze.ControllerDeps{
		Extractor: extractor,
		Generator: gen,
	})

	_, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "binary junk"),
		Format: domain.FormatFromPath("image.png"),
	})

	var vErr *analyze.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, analyze.ReasonUnsupportedFormat, vErr.Reason)
	assert.Equal(t, 0, extractor.calls)
	assert.Equal(t, 0, gen.calls())
}

func TestAnalyzeEmptyDocumentMakesNoCalls(t *testing.T) {
	gen := &scriptedGenerator{}
	ctrl := newTestController(gen, &recordingSleep{}, nil)

	_, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "   \n\t  "),
		Format: domain.FormatText,
	})

	var vErr *analyze.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, analyze.ReasonEmptyDocument, vErr.Reason)
	assert.Equal(t, 0, gen.calls())
}

func TestAnalyzeExtractionErrorIsWrapped(t *testing.T) {
	extractErr := errors.New("corrupt archive")
	ctrl := analyze.NewController(analyze.ControllerDeps{
		Extractor: &textExtractor{err: extractErr},
		Generator: &scriptedGenerator{},
	})

	_, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "anything"),
		Format: domain.FormatText,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, extractErr)
}

func TestAnalyzeTruncatesLongDocuments(t *testing.T) {
	gen := &scriptedGenerator{results: []scriptedResult{
		{gen: analyze.Generation{Text: "analysis", TotalTokens: 10}},
	}}
	ctrl := analyze.NewController(analyze.ControllerDeps{
		Extractor: &textExtractor{},
		Generator: gen,
		Settings:  analyze.Settings{MaxChars: 100},
	})

	_, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, strings.Repeat("x", 500)),
		Format: domain.FormatText,
	})

	require.NoError(t, err)
	require.Equal(t, 1, gen.calls())
	assert.Contains(t, gen.prompts[0], strings.Repeat("x", 100)+analyze.TruncationMarker)
	assert.NotContains(t, gen.prompts[0], strings.Repeat("x", 101))
}

func TestAnalyzeRequestOverridesSettings(t *testing.T) {
	rateLimited := llmhttp.NewRateLimitError("quota exceeded")
	gen := &scriptedGenerator{results: []scriptedResult{{err: rateLimited}}}
	sleep := &recordingSleep{}
	ctrl := newTestController(gen, sleep, nil)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:        writeTempDoc(t, "meeting notes"),
		Format:      domain.FormatText,
		MaxAttempts: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRateLimited, outcome.Kind)
	assert.Equal(t, 1, gen.calls())
	assert.Empty(t, sleep.slept)
}

func TestAnalyzeCancelledWaitStopsTheRun(t *testing.T) {
	rateLimited := llmhttp.NewRateLimitError("quota exceeded")
	gen := &scriptedGenerator{results: []scriptedResult{{err: rateLimited}}}
	sleep := &recordingSleep{err: context.Canceled}
	ctrl := newTestController(gen, sleep, nil)

	outcome, err := ctrl.Analyze(context.Background(), analyze.Request{
		Path:   writeTempDoc(t, "meeting notes"),
		Format: domain.FormatText,
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.OutcomeRateLimited, outcome.Kind)
	assert.False(t, outcome.AttemptsExhausted)
	assert.Equal(t, 1, gen.calls())
}

func TestCost(t *testing.T) {
	tests := []struct {
		name            string
		totalTokens     int
		pricePerMillion float64
		want            float64
	}{
		{"zero tokens", 0, 0.15, 0},
		{"one thousand tokens at default price", 1000, 0.15, 0.00015},
		{"one million tokens", 1_000_000, 0.15, 0.15},
		{"custom price", 500_000, 0.30, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, analyze.Cost(tt.totalTokens, tt.pricePerMillion), 1e-12)
		})
	}
}

func TestCostIsMonotonicInTokens(t *testing.T) {
	prev := -1.0
	for _, tokens := range []int{0, 1, 10, 1000, 100_000, 10_000_000} {
		cost := analyze.Cost(tokens, 0.15)
		assert.Greater(t, cost, prev)
		prev = cost
	}
}
