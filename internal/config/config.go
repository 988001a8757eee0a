package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const defaultSpanDetectorModel = "KRLabsOrg/lettucedect-base-modernbert-en-v1"

// Defaults returns the documented default configuration: all core metrics
// enabled, ROUGE off by default (it depends on an inference-free strategy
// the operator opts into).
func Defaults() EvaluationConfig {
	return EvaluationConfig{
		Metrics: MetricsConfig{
			ResponseRelevance:          true,
			ResponseCompleteness:       true,
			Hallucination:              true,
			Rouge:                      false,
			HallucinationMethod:        HallucinationLLMJudge,
			RougeMethod:                RougeNGram,
			SpanDetectorModel:          defaultSpanDetectorModel,
			ResponseRelevanceWeight:    0.3,
			ResponseCompletenessWeight: 0.3,
			HallucinationWeight:        0.3,
			RougeWeight:                0.1,
			RougeTypes:                 []string{"rouge-1", "rouge-2", "rouge-l"},
		},
		LLMProvider: LLMProviderConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		Report: ReportConfig{
			IncludeDetailedExplanations: true,
			IncludeContextSources:       true,
			OutputFormat:                "both",
		},
	}
}

// Load reads the YAML config at path and merges it over the defaults.
// A missing file is not an error: the defaults apply as-is.
func Load(path string, logger *zerolog.Logger) (EvaluationConfig, error) {
	if path == "" {
		path = os.Getenv("CHAT_EVAL_CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("path", path).Msg("no config file, using defaults")
			return Defaults(), nil
		}
		return EvaluationConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var overrides FileConfig
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return EvaluationConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Merge(Defaults(), &overrides, logger)
	logger.Info().
		Bool("relevance", cfg.Metrics.ResponseRelevance).
		Bool("completeness", cfg.Metrics.ResponseCompleteness).
		Bool("hallucination", cfg.Metrics.Hallucination).
		Bool("rouge", cfg.Metrics.Rouge).
		Str("provider", cfg.LLMProvider.Provider).
		Msg("configuration loaded")
	return cfg, nil
}

// Merge applies the overrides present in a partial file config on top of
// defaults. It is total: nil or empty overrides return defaults unchanged.
func Merge(defaults EvaluationConfig, overrides *FileConfig, logger *zerolog.Logger) EvaluationConfig {
	cfg := defaults
	if overrides == nil {
		return cfg
	}

	m := overrides.Metrics
	applyBool(&cfg.Metrics.ResponseRelevance, m.ResponseRelevance.Enabled)
	applyBool(&cfg.Metrics.ResponseCompleteness, m.ResponseCompleteness.Enabled)
	applyBool(&cfg.Metrics.Hallucination, m.Hallucination.Enabled)
	applyBool(&cfg.Metrics.Rouge, m.Rouge.Enabled)

	applyFloat(&cfg.Metrics.ResponseRelevanceWeight, m.ResponseRelevance.Weight)
	applyFloat(&cfg.Metrics.ResponseCompletenessWeight, m.ResponseCompleteness.Weight)
	applyFloat(&cfg.Metrics.HallucinationWeight, m.Hallucination.Weight)
	applyFloat(&cfg.Metrics.RougeWeight, m.Rouge.Weight)

	if m.Hallucination.Method != nil {
		cfg.Metrics.HallucinationMethod = ParseHallucinationMethod(*m.Hallucination.Method, logger)
	}
	if m.Rouge.Method != nil {
		cfg.Metrics.RougeMethod = ParseRougeMethod(*m.Rouge.Method, logger)
	}
	applyString(&cfg.Metrics.SpanDetectorModel, m.Hallucination.LettuceDetectModel)
	if len(m.Rouge.RougeTypes) > 0 {
		cfg.Metrics.RougeTypes = m.Rouge.RougeTypes
	}

	applyString(&cfg.LLMProvider.Provider, overrides.LLMProvider.Provider)
	applyString(&cfg.LLMProvider.Model, overrides.LLMProvider.Model)
	applyString(&cfg.LLMProvider.APIKey, overrides.LLMProvider.APIKey)

	applyBool(&cfg.Report.IncludeDetailedExplanations, overrides.Report.IncludeDetailedExplanations)
	applyBool(&cfg.Report.IncludeContextSources, overrides.Report.IncludeContextSources)
	applyString(&cfg.Report.OutputFormat, overrides.Report.OutputFormat)

	return cfg
}

func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
