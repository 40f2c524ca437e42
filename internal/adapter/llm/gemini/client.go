package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
	"github.com/VenkatDaruru/doc-analyzer/internal/usecase/analyze"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client is an HTTP client for the Google Gemini generateContent API.
// Each Generate makes exactly one HTTP request; retry decisions live in
// the analysis controller, so the client only translates failures into
// typed errors the controller can classify.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client

	// Observability components
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
	pricing llmhttp.Pricing
}

// NewClient creates a Gemini client. A zero timeout disables the
// per-call deadline: a slow but successful call is never cut short.
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetLogger sets the logger for this client.
func (c *Client) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// SetMetrics sets the metrics tracker for this client.
func (c *Client) SetMetrics(metrics llmhttp.Metrics) {
	c.metrics = metrics
}

// SetPricing sets the pricing calculator for this client.
func (c *Client) SetPricing(pricing llmhttp.Pricing) {
	c.pricing = pricing
}

// Generate implements the controller's Generator port with a single call
// to the generateContent endpoint.
func (c *Client) Generate(ctx context.Context, prompt string) (analyze.Generation, error) {
	startTime := time.Now()

	if c.logger != nil {
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Model:       c.model,
			Timestamp:   startTime,
			PromptChars: len(prompt),
			APIKey:      c.apiKey,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordRequest(c.model)
	}

	reqBody := GenerateContentRequest{
		Contents: []Content{
			{
				Parts: []Part{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: &GenerationConfig{CandidateCount: 1},
		SafetySettings: []SafetySetting{
			{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_ONLY_HIGH"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_ONLY_HIGH"},
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_ONLY_HIGH"},
			{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_ONLY_HIGH"},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return analyze.Generation{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return analyze.Generation{}, c.fail(ctx, startTime, &llmhttp.Error{
			Type:      llmhttp.ErrTypeUnknown,
			Message:   llmhttp.RedactURLSecrets(err.Error()),
			Retryable: false,
		})
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return analyze.Generation{}, c.fail(ctx, startTime, &llmhttp.Error{
			Type:      llmhttp.ErrTypeTimeout,
			Message:   llmhttp.RedactURLSecrets(err.Error()),
			Retryable: false,
		})
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return analyze.Generation{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return analyze.Generation{}, c.fail(ctx, startTime, c.mapErrorResponse(resp.StatusCode, bodyBytes))
	}

	var genResp GenerateContentResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return analyze.Generation{}, fmt.Errorf("failed to parse response: %w", err)
	}

	// No candidates means the service declined to answer. Treated the
	// same as an explicit safety stop: terminal, never retried.
	if len(genResp.Candidates) == 0 {
		return analyze.Generation{}, c.fail(ctx, startTime, llmhttp.NewContentFilteredError("response contained no candidates"))
	}

	candidate := genResp.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return analyze.Generation{}, c.fail(ctx, startTime, llmhttp.NewContentFilteredError("content blocked by safety filters"))
	}

	var textParts []string
	for _, part := range candidate.Content.Parts {
		textParts = append(textParts, part.Text)
	}

	totalTokens := genResp.UsageMetadata.TotalTokenCount
	duration := time.Since(startTime)

	var cost float64
	if c.pricing != nil {
		cost = c.pricing.GetCost(c.model, totalTokens)
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Model:        c.model,
			Timestamp:    time.Now(),
			Duration:     duration,
			TotalTokens:  totalTokens,
			Cost:         cost,
			StatusCode:   resp.StatusCode,
			FinishReason: candidate.FinishReason,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordDuration(c.model, duration)
		c.metrics.RecordTokens(c.model, totalTokens)
		c.metrics.RecordCost(c.model, cost)
	}

	return analyze.Generation{
		Text:        strings.Join(textParts, ""),
		TotalTokens: totalTokens,
	}, nil
}

// fail logs and records a typed error before returning it.
func (c *Client) fail(ctx context.Context, startTime time.Time, apiErr *llmhttp.Error) error {
	duration := time.Since(startTime)

	if c.logger != nil {
		c.logger.LogError(ctx, llmhttp.ErrorLog{
			Model:      c.model,
			Timestamp:  time.Now(),
			Duration:   duration,
			Error:      apiErr,
			ErrorType:  apiErr.Type,
			StatusCode: apiErr.StatusCode,
			Retryable:  apiErr.Retryable,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordError(c.model, apiErr.Type)
	}
	return apiErr
}

// mapErrorResponse maps HTTP status codes to typed errors.
func (c *Client) mapErrorResponse(statusCode int, body []byte) *llmhttp.Error {
	message := fmt.Sprintf("HTTP %d", statusCode)

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeAuthentication,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
		}
	case http.StatusTooManyRequests:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeRateLimit,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
		}
	case http.StatusBadRequest:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeInvalidRequest,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
		}
	case http.StatusServiceUnavailable, http.StatusInternalServerError:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeServiceUnavailable,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  true,
		}
	default:
		return &llmhttp.Error{
			Type:       llmhttp.ErrTypeUnknown,
			Message:    message,
			StatusCode: statusCode,
			Retryable:  false,
		}
	}
}

// Compile-time interface compliance check
var _ analyze.Generator = (*Client)(nil)
