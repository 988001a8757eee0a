// Package setup builds the evaluation stack shared by every entrypoint: the
// CLI, the HTTP API, the MCP server and the stream consumer.
package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/raglabs/chat-eval/internal/config"
	"github.com/raglabs/chat-eval/internal/evaluator"
	"github.com/raglabs/chat-eval/internal/llm"
	"github.com/raglabs/chat-eval/internal/llm/bedrock"
	"github.com/raglabs/chat-eval/internal/llm/gpt"
	"github.com/raglabs/chat-eval/internal/llm/mockjudge"
	"github.com/raglabs/chat-eval/internal/loader"
	"github.com/raglabs/chat-eval/internal/orchestrator"
	"github.com/raglabs/chat-eval/internal/spandetect"
	"github.com/rs/zerolog"
)

// Env holds the environment-level settings that stay out of the YAML config:
// credentials, endpoints, regions.
type Env struct {
	AWSRegion     string
	ClaudeModelID string
	OpenAIKey     string
	OpenAIModelID string
	SpanDetectURL string
	RedisAddr     string
	RedisPassword string
	ConfigPath    string
}

type Dependencies struct {
	Config       config.EvaluationConfig
	Orchestrator *orchestrator.Orchestrator
	Loader       *loader.Loader
	Logger       *zerolog.Logger
}

func LoadEnv() *Env {
	return &Env{
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID: getEnv("OPENAI_MODEL_ID", ""),
		SpanDetectURL: getEnv("SPANDETECT_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		ConfigPath:    getEnv("CHAT_EVAL_CONFIG_PATH", ""),
	}
}

// Wire builds every dependency up front. Strategies for disabled metrics are
// not constructed; a metric whose method cannot be built fails here rather
// than mid-batch.
func Wire(ctx context.Context, env *Env, cfg config.EvaluationConfig, logger *zerolog.Logger) (*Dependencies, error) {
	var opts []orchestrator.Option

	needsJudge := cfg.Metrics.ResponseRelevance || cfg.Metrics.ResponseCompleteness ||
		(cfg.Metrics.Hallucination && cfg.Metrics.HallucinationMethod == config.HallucinationLLMJudge) ||
		(cfg.Metrics.Rouge && cfg.Metrics.RougeMethod == config.RougeLLMJudge)

	var judgeClient llm.Client
	if needsJudge {
		var err error
		judgeClient, err = createLLMClient(ctx, env, cfg.LLMProvider)
		if err != nil {
			return nil, fmt.Errorf("create llm client: %w", err)
		}
	}

	if cfg.Metrics.ResponseRelevance || cfg.Metrics.ResponseCompleteness {
		opts = append(opts, orchestrator.WithRelevance(evaluator.NewLLMRelevance(judgeClient, logger)))
	}

	if cfg.Metrics.Hallucination {
		switch cfg.Metrics.HallucinationMethod {
		case config.HallucinationSpanDetector:
			detector, err := spandetect.NewClient(env.SpanDetectURL, cfg.Metrics.SpanDetectorModel, logger)
			if err != nil {
				return nil, err
			}
			opts = append(opts, orchestrator.WithSpanHallucination(evaluator.NewSpanHallucination(detector, logger)))
		default:
			opts = append(opts, orchestrator.WithJudgeHallucination(evaluator.NewLLMHallucination(judgeClient, logger)))
		}
	}

	if cfg.Metrics.Rouge {
		ngram := evaluator.NewNGramRouge(cfg.Metrics.RougeTypes, logger)
		switch cfg.Metrics.RougeMethod {
		case config.RougeLLMJudge:
			opts = append(opts, orchestrator.WithJudgeRouge(evaluator.NewLLMRouge(judgeClient, ngram, logger)))
		default:
			opts = append(opts, orchestrator.WithNGramRouge(ngram))
		}
	}

	orch, err := orchestrator.New(cfg.Metrics, logger, opts...)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:       cfg,
		Orchestrator: orch,
		Loader:       loader.New(logger),
		Logger:       logger,
	}, nil
}

func createLLMClient(ctx context.Context, env *Env, provider config.LLMProviderConfig) (llm.Client, error) {
	switch provider.Provider {
	case "bedrock", "anthropic":
		modelID := provider.Model
		if modelID == "" {
			modelID = env.ClaudeModelID
		}
		return bedrock.NewClient(ctx, env.AWSRegion, modelID)
	case "openai":
		apiKey := provider.APIKey
		if apiKey == "" {
			apiKey = env.OpenAIKey
		}
		model := provider.Model
		if model == "" {
			model = env.OpenAIModelID
		}
		return gpt.NewClient(apiKey, model)
	case "mock":
		return mockjudge.NewClient(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q (expected bedrock, anthropic, openai or mock)", provider.Provider)
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
