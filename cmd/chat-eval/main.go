package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/raglabs/chat-eval/internal/config"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/raglabs/chat-eval/internal/pipeline"
	"github.com/raglabs/chat-eval/internal/report"
	"github.com/raglabs/chat-eval/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	conversationPath := flag.String("conversation", "", "Path to the conversation JSON export")
	vectorsPath := flag.String("vectors", "", "Path to the context vectors JSON export")
	turn := flag.Int("turn", 0, "Evaluate only this turn number (0 = all AI turns)")
	configPath := flag.String("config", "", "Path to YAML config (default: configs/config.yaml)")
	provider := flag.String("provider", "", "Override LLM provider (bedrock, anthropic, openai, mock)")
	model := flag.String("model", "", "Override judge model identifier")
	useMock := flag.Bool("mock", false, "Use the offline mock judge (no API calls)")
	outputFormat := flag.String("report", "", "Override report output format (text, json, both)")
	flag.Parse()

	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	if *conversationPath == "" || *vectorsPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: chat-eval -conversation <file> -vectors <file> [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load env
	_ = godotenv.Load()

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := setup.LoadEnv()

	cfg, err := config.Load(*configPath, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	// CLI overrides beat both file and defaults.
	if *useMock {
		cfg.LLMProvider.Provider = "mock"
	}
	if *provider != "" {
		cfg.LLMProvider.Provider = *provider
	}
	if *model != "" {
		cfg.LLMProvider.Model = *model
	}
	if *outputFormat != "" {
		cfg.Report.OutputFormat = *outputFormat
	}

	deps, err := setup.Wire(ctx, env, cfg, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Unable to load dependencies")
		os.Exit(1)
	}

	session := pipeline.NewSession(deps.Loader, deps.Orchestrator, &logger)
	results, err := session.EvaluateConversation(ctx, *conversationPath, *vectorsPath, *turn)
	if err != nil {
		logger.Error().Err(err).Msg("Evaluation failed")
		os.Exit(1)
	}

	if err := renderResults(cfg.Report, results, &logger); err != nil {
		logger.Error().Err(err).Msg("Failed to render report")
		os.Exit(1)
	}
}

func renderResults(cfg config.ReportConfig, results []models.EvaluationResult, logger *zerolog.Logger) error {
	var renderers []report.Renderer
	switch cfg.OutputFormat {
	case "json":
		renderers = append(renderers, report.NewJSONRenderer(cfg))
	case "text":
		renderers = append(renderers, report.NewTextRenderer(cfg))
	case "both", "":
		renderers = append(renderers, report.NewTextRenderer(cfg), report.NewJSONRenderer(cfg))
	default:
		logger.Warn().Str("format", cfg.OutputFormat).Msg("unknown output format, using text")
		renderers = append(renderers, report.NewTextRenderer(cfg))
	}

	for _, renderer := range renderers {
		if err := renderer.Render(os.Stdout, results); err != nil {
			return err
		}
	}
	return nil
}
