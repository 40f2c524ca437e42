package http

// DefaultPricePerMillion is the assumed cost per 1M total tokens in USD
// when no explicit price is configured. Matches Gemini Flash pricing.
const DefaultPricePerMillion = 0.15

// Pricing estimates API cost from reported token usage.
type Pricing interface {
	// GetCost calculates cost in USD for a given model and total token count
	GetCost(model string, totalTokens int) float64
}

// FlatPricing charges a single per-million-token rate regardless of model.
// The Gemini usage metadata reports a combined total token count, so a
// flat rate over that total is the estimate the tool surfaces to users.
type FlatPricing struct {
	perMillion float64
}

// NewFlatPricing creates a pricing calculator with the given USD rate per
// 1M tokens. Non-positive rates fall back to DefaultPricePerMillion.
func NewFlatPricing(perMillion float64) *FlatPricing {
	if perMillion <= 0 {
		perMillion = DefaultPricePerMillion
	}
	return &FlatPricing{perMillion: perMillion}
}

// GetCost calculates the estimated cost for a call.
func (p *FlatPricing) GetCost(model string, totalTokens int) float64 {
	return float64(totalTokens) / 1_000_000.0 * p.perMillion
}
