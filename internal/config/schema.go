package config

import "github.com/rs/zerolog"

// HallucinationMethod selects the hallucination detection strategy.
type HallucinationMethod string

const (
	HallucinationLLMJudge     HallucinationMethod = "llm_judge"
	HallucinationSpanDetector HallucinationMethod = "lettucedetect"
)

// ParseHallucinationMethod maps a config string onto a known method.
// Unknown values fall back to the LLM judge; the fallback is logged so a
// typo in the config is visible instead of silently changing behavior.
func ParseHallucinationMethod(s string, logger *zerolog.Logger) HallucinationMethod {
	switch HallucinationMethod(s) {
	case HallucinationLLMJudge:
		return HallucinationLLMJudge
	case HallucinationSpanDetector:
		return HallucinationSpanDetector
	default:
		logger.Warn().
			Str("method", s).
			Str("fallback", string(HallucinationLLMJudge)).
			Msg("unknown hallucination method, falling back")
		return HallucinationLLMJudge
	}
}

// RougeMethod selects the ROUGE computation strategy.
type RougeMethod string

const (
	RougeNGram    RougeMethod = "rouge"
	RougeLLMJudge RougeMethod = "llm_judge"
)

func ParseRougeMethod(s string, logger *zerolog.Logger) RougeMethod {
	switch RougeMethod(s) {
	case RougeNGram:
		return RougeNGram
	case RougeLLMJudge:
		return RougeLLMJudge
	default:
		logger.Warn().
			Str("method", s).
			Str("fallback", string(RougeNGram)).
			Msg("unknown rouge method, falling back")
		return RougeNGram
	}
}

// MetricsConfig declares which metrics run, how, and with what weight.
// Weights need not sum to 1: the orchestrator renormalizes over the total
// weight of the metrics that actually executed.
type MetricsConfig struct {
	ResponseRelevance    bool
	ResponseCompleteness bool
	Hallucination        bool
	Rouge                bool

	HallucinationMethod HallucinationMethod
	RougeMethod         RougeMethod

	// Model identifier for the span-detector inference endpoint.
	SpanDetectorModel string

	ResponseRelevanceWeight    float64
	ResponseCompletenessWeight float64
	HallucinationWeight        float64
	RougeWeight                float64

	RougeTypes []string
}

// LLMProviderConfig selects the judge transport.
type LLMProviderConfig struct {
	Provider string
	Model    string
	APIKey   string
}

type ReportConfig struct {
	IncludeDetailedExplanations bool
	IncludeContextSources       bool
	OutputFormat                string // text, json, both
}

// EvaluationConfig is loaded once per run and immutable thereafter.
type EvaluationConfig struct {
	Metrics     MetricsConfig
	LLMProvider LLMProviderConfig
	Report      ReportConfig
}

// FileConfig mirrors the YAML layout. Pointer fields distinguish "absent"
// from zero values so a partial file only overrides what it mentions.
type FileConfig struct {
	Metrics struct {
		ResponseRelevance    MetricSection `yaml:"response_relevance"`
		ResponseCompleteness MetricSection `yaml:"response_completeness"`
		Hallucination        struct {
			MetricSection      `yaml:",inline"`
			LettuceDetectModel *string `yaml:"lettucedetect_model"`
		} `yaml:"hallucination"`
		Rouge struct {
			MetricSection `yaml:",inline"`
			RougeTypes    []string `yaml:"rouge_types"`
		} `yaml:"rouge"`
	} `yaml:"metrics"`
	LLMProvider struct {
		Provider *string `yaml:"provider"`
		Model    *string `yaml:"model"`
		APIKey   *string `yaml:"api_key"`
	} `yaml:"llm_provider"`
	Report struct {
		IncludeDetailedExplanations *bool   `yaml:"include_detailed_explanations"`
		IncludeContextSources       *bool   `yaml:"include_context_sources"`
		OutputFormat                *string `yaml:"output_format"`
	} `yaml:"report"`
}

type MetricSection struct {
	Enabled *bool    `yaml:"enabled"`
	Method  *string  `yaml:"method"`
	Weight  *float64 `yaml:"weight"`
}
