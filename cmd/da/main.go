package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/VenkatDaruru/doc-analyzer/internal/adapter/cli"
	"github.com/VenkatDaruru/doc-analyzer/internal/adapter/extract"
	"github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm"
	"github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/gemini"
	llmhttp "github.com/VenkatDaruru/doc-analyzer/internal/adapter/llm/http"
	"github.com/VenkatDaruru/doc-analyzer/internal/adapter/output/report"
	"github.com/VenkatDaruru/doc-analyzer/internal/config"
	"github.com/VenkatDaruru/doc-analyzer/internal/usecase/analyze"
	"github.com/VenkatDaruru/doc-analyzer/internal/version"
)

func main() {
	if err := run(); err != nil {
		// Redact API keys from URLs in error messages before logging
		log.Println(llmhttp.RedactURLSecrets(err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling so Ctrl-C interrupts a
	// backoff wait instead of stalling for minutes
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "da",
		EnvPrefix:   "DA",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	apiKey := cfg.Gemini.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("gemini API key not configured (set GEMINI_API_KEY or gemini.apiKey in da.yaml)")
	}

	obs := buildObservability(cfg.Observability, cfg.Analysis.PricePerMillion)

	timeout := llmhttp.ParseTimeout(cfg.Gemini.Timeout, 0)
	client := gemini.NewClient(apiKey, cfg.Gemini.Model, timeout)
	if obs.logger != nil {
		client.SetLogger(obs.logger)
	}
	if obs.metrics != nil {
		client.SetMetrics(obs.metrics)
	}
	client.SetPricing(obs.pricing)

	backoffBase := 60 * time.Second
	if cfg.Analysis.BackoffBase != "" {
		if parsed, err := time.ParseDuration(cfg.Analysis.BackoffBase); err == nil && parsed > 0 {
			backoffBase = parsed
		} else {
			log.Printf("warning: invalid backoff base %q, using default 60s", cfg.Analysis.BackoffBase)
		}
	}

	controller := analyze.NewController(analyze.ControllerDeps{
		Extractor:      extract.New(),
		Generator:      client,
		Reporter:       cli.NewConsoleReporter(os.Stdout),
		TokenEstimator: llm.EstimateTokens,
		Settings: analyze.Settings{
			MaxChars:        cfg.Analysis.MaxChars,
			MaxAttempts:     cfg.Analysis.MaxAttempts,
			BackoffBase:     backoffBase,
			PricePerMillion: cfg.Analysis.PricePerMillion,
		},
	})

	root := cli.NewRootCommand(cli.Dependencies{
		Analyzer: controller,
		NewReportWriter: func(dir string) cli.ReportWriter {
			return report.NewWriter(dir, time.Now)
		},
		DefaultOutputDir: cfg.Output.Directory,
		Interactive:      cli.IsInteractive,
		Version:          version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "da"))
	}
	return paths
}

// observabilityComponents holds shared observability instances
type observabilityComponents struct {
	logger  llmhttp.Logger
	metrics llmhttp.Metrics
	pricing llmhttp.Pricing
}

// buildObservability creates observability components based on configuration
func buildObservability(cfg config.ObservabilityConfig, pricePerMillion float64) observabilityComponents {
	var logger llmhttp.Logger
	var metrics llmhttp.Metrics

	if cfg.Logging.Enabled {
		logLevel := llmhttp.LogLevelInfo
		switch cfg.Logging.Level {
		case "debug":
			logLevel = llmhttp.LogLevelDebug
		case "error":
			logLevel = llmhttp.LogLevelError
		}

		logFormat := llmhttp.LogFormatHuman
		if cfg.Logging.Format == "json" {
			logFormat = llmhttp.LogFormatJSON
		}

		logger = llmhttp.NewDefaultLogger(logLevel, logFormat, cfg.Logging.RedactAPIKeys)
	}

	if cfg.Metrics.Enabled {
		metrics = llmhttp.NewDefaultMetrics()
	}

	return observabilityComponents{
		logger:  logger,
		metrics: metrics,
		pricing: llmhttp.NewFlatPricing(pricePerMillion),
	}
}

// Compile-time interface compliance checks
var _ cli.Analyzer = (*analyze.Controller)(nil)
var _ analyze.Extractor = (*extract.Extractor)(nil)
var _ analyze.Generator = (*gemini.Client)(nil)
var _ cli.ReportWriter = (*report.Writer)(nil)
