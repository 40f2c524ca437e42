package http_test

import (
	"testing"

	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
	"github.com/stretchr/testify/assert"
)

func TestFlatPricingGetCost(t *testing.T) {
	pricing := llmhttp.NewFlatPricing(0.15)

	tests := []struct {
		name        string
		totalTokens int
		want        float64
	}{
		{"zero tokens", 0, 0},
		{"one thousand tokens", 1000, 0.00015},
		{"one million tokens", 1_000_000, 0.15},
		{"ten million tokens", 10_000_000, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, pricing.GetCost("gemini-2.0-flash", tt.totalTokens), 1e-12)
		})
	}
}

func TestFlatPricingIgnoresModel(t *testing.T) {
	pricing := llmhttp.NewFlatPricing(0.15)

	assert.Equal(t,
		pricing.GetCost("gemini-2.0-flash", 5000),
		pricing.GetCost("gemini-1.5-pro", 5000))
}

func TestNewFlatPricingFallsBackToDefault(t *testing.T) {
	for _, rate := range []float64{0, -1} {
		pricing := llmhttp.NewFlatPricing(rate)
		assert.InDelta(t, llmhttp.DefaultPricePerMillion, pricing.GetCost("any", 1_000_000), 1e-12)
	}
}
