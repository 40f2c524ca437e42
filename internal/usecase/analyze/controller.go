package analyze

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
	"github.com/VenkatDaruru/doc-analyzer/internal/domain"
)

// Generation is the result of one successful remote model call.
type Generation struct {
	Text        string
	TotalTokens int
}

// Generator is the remote model capability. One invocation makes exactly
// one request; retries belong to the controller, never the implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Generation, error)
}

// Extractor pulls raw text out of a document file.
type Extractor interface {
	Extract(path string, format domain.Format) (string, error)
}

// SleepFunc suspends for d. The default honors context cancellation;
// tests substitute a recording fake so no real waiting happens.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Settings carries the per-controller configuration. Zero values fall
// back to the documented defaults.
type Settings struct {
	MaxChars        int           // document text bound, default 50000
	MaxAttempts     int           // remote call budget, default 3
	BackoffBase     time.Duration // linear backoff base, default 60s
	PricePerMillion float64       // USD per 1M tokens, default 0.15
}

func (s Settings) withDefaults() Settings {
	if s.MaxChars <= 0 {
		s.MaxChars = DefaultMaxChars
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = 3
	}
	if s.BackoffBase <= 0 {
		s.BackoffBase = 60 * time.Second
	}
	if s.PricePerMillion <= 0 {
		s.PricePerMillion = llmhttp.DefaultPricePerMillion
	}
	return s
}

// ControllerDeps captures the collaborators for a Controller.
type ControllerDeps struct {
	Extractor      Extractor
	Generator      Generator
	Reporter       Reporter             // optional, NopReporter when nil
	Sleep          SleepFunc            // optional, context-aware default
	TokenEstimator func(string) int     // optional pre-call estimate
	Settings       Settings
}

// Controller runs a single document analysis: validate, extract,
// truncate, build the prompt, then drive the bounded retry loop against
// the remote model. One Request produces exactly one Outcome; there is no
// state shared across runs.
type Controller struct {
	extractor Extractor
	generator Generator
	reporter  Reporter
	sleep     SleepFunc
	estimate  func(string) int
	settings  Settings
}

// NewController wires a Controller from its dependencies.
func NewController(deps ControllerDeps) *Controller {
	reporter := deps.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = defaultSleep
	}
	return &Controller{
		extractor: deps.Extractor,
		generator: deps.Generator,
		reporter:  reporter,
		sleep:     sleep,
		estimate:  deps.TokenEstimator,
		settings:  deps.Settings.withDefaults(),
	}
}

// Request describes one analysis run. MaxAttempts and MaxChars override
// the controller settings when positive.
type Request struct {
	Path        string
	Format      domain.Format
	MaxAttempts int
	MaxChars    int
}

// Analyze validates the request, extracts the document text, and runs the
// retry loop. Validation and extraction failures return an error and make
// zero remote calls; once the remote call starts, the result is always a
// terminal Outcome.
func (c *Controller) Analyze(ctx context.Context, req Request) (domain.Outcome, error) {
	settings := c.settings
	if req.MaxAttempts > 0 {
		settings.MaxAttempts = req.MaxAttempts
	}
	if req.MaxChars > 0 {
		settings.MaxChars = req.MaxChars
	}

	if _, err := os.Stat(req.Path); err != nil {
		return domain.Outcome{}, NewFileNotFound(req.Path)
	}
	if !req.Format.Supported() {
		return domain.Outcome{}, NewUnsupportedFormat(string(req.Format))
	}

	c.reporter.ExtractionStarted(req.Path, req.Format)
	text, err := c.extractor.Extract(req.Path, req.Format)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("extract %s: %w", req.Path, err)
	}
	if strings.TrimSpace(text) == "" {
		return domain.Outcome{}, NewEmptyDocument(req.Path)
	}
	c.reporter.ExtractionFinished(len(text))

	bounded, cut := Truncate(text, settings.MaxChars)
	if cut {
		c.reporter.Truncated(len(text), settings.MaxChars)
	}

	prompt := BuildPrompt(bounded)
	estimated := 0
	if c.estimate != nil {
		estimated = c.estimate(prompt)
	}
	c.reporter.PromptBuilt(len(prompt), estimated)

	return c.run(ctx, prompt, settings)
}

// run drives the retry state machine to a terminal outcome.
func (c *Controller) run(ctx context.Context, prompt string, settings Settings) (domain.Outcome, error) {
	state := Start()
	for {
		c.reporter.AttemptStarted(state.Attempt, settings.MaxAttempts)

		gen, callErr := c.generator.Generate(ctx, prompt)
		state = Advance(state, settings.MaxAttempts, settings.BackoffBase, callErr)

		switch state.Kind {
		case StateSucceeded:
			cost := Cost(gen.TotalTokens, settings.PricePerMillion)
			c.reporter.Succeeded(gen.TotalTokens, cost)
			return domain.Success(gen.Text, gen.TotalTokens, cost), nil

		case StateBlocked:
			c.reporter.Blocked()
			return domain.Blocked(), nil

		case StateExhausted:
			c.reporter.Exhausted(settings.MaxAttempts, RemediationSuggestions())
			return domain.RateLimited(true), nil

		case StateFailed:
			c.reporter.Failed(state.Message)
			return domain.TransientError(state.Message), nil

		case StateRetryWait:
			c.reporter.RateLimited(state.Attempt, state.Wait)
			if err := c.wait(ctx, state.Wait); err != nil {
				return domain.RateLimited(false), err
			}
			state = Resume(state)
		}
	}
}

// wait suspends for the full backoff duration in whole-second steps so
// the countdown stays observable through the Reporter.
func (c *Controller) wait(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; remaining -= time.Second {
		c.reporter.Countdown(remaining)
		step := time.Second
		if remaining < step {
			step = remaining
		}
		if err := c.sleep(ctx, step); err != nil {
			return err
		}
	}
	return nil
}

// Cost estimates the dollar cost of a call from its reported token count.
func Cost(totalTokens int, pricePerMillion float64) float64 {
	return float64(totalTokens) / 1_000_000.0 * pricePerMillion
}

// RemediationSuggestions lists user actions after retry exhaustion.
func RemediationSuggestions() []string {
	return []string{
		"Wait 2-3 minutes and try again",
		"Try a smaller document",
		"Check your usage at: https://ai.dev/usage",
	}
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
