package config

// Config represents the full application configuration.
type Config struct {
	Gemini        GeminiConfig        `yaml:"gemini"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Output        OutputConfig        `yaml:"output"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// GeminiConfig configures the remote model call.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`

	// Timeout is the transport timeout for one call. "0" (the default)
	// imposes no per-call deadline.
	Timeout string `yaml:"timeout"`
}

// AnalysisConfig configures the retry controller.
type AnalysisConfig struct {
	MaxChars        int     `yaml:"maxChars"`
	MaxAttempts     int     `yaml:"maxAttempts"`
	BackoffBase     string  `yaml:"backoffBase"`
	PricePerMillion float64 `yaml:"pricePerMillion"`
}

// OutputConfig configures where reports are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // json, human
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}

// MetricsConfig configures performance and cost metrics tracking.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}
