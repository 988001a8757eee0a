package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func nopLogger() *zerolog.Logger {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return &logger
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if !cfg.Metrics.ResponseRelevance || !cfg.Metrics.ResponseCompleteness || !cfg.Metrics.Hallucination {
		t.Error("Expected relevance, completeness and hallucination enabled by default")
	}
	if cfg.Metrics.Rouge {
		t.Error("Expected rouge disabled by default")
	}
	if cfg.Metrics.HallucinationMethod != HallucinationLLMJudge {
		t.Errorf("Expected llm_judge default, got %s", cfg.Metrics.HallucinationMethod)
	}

	total := cfg.Metrics.ResponseRelevanceWeight +
		cfg.Metrics.ResponseCompletenessWeight +
		cfg.Metrics.HallucinationWeight +
		cfg.Metrics.RougeWeight
	if total != 1.0 {
		t.Errorf("Expected default weights to sum to 1.0, got %f", total)
	}
}

func TestMerge_PartialOverrides(t *testing.T) {
	var overrides FileConfig
	enabled := true
	disabled := false
	weight := 0.5
	method := "lettucedetect"
	provider := "bedrock"

	overrides.Metrics.Rouge.Enabled = &enabled
	overrides.Metrics.Hallucination.Enabled = &disabled
	overrides.Metrics.Hallucination.Method = &method
	overrides.Metrics.ResponseRelevance.Weight = &weight
	overrides.LLMProvider.Provider = &provider
	overrides.Metrics.Rouge.RougeTypes = []string{"rouge-l"}

	cfg := Merge(Defaults(), &overrides, nopLogger())

	if !cfg.Metrics.Rouge {
		t.Error("Expected rouge enabled by override")
	}
	if cfg.Metrics.Hallucination {
		t.Error("Expected hallucination disabled by override")
	}
	if cfg.Metrics.HallucinationMethod != HallucinationSpanDetector {
		t.Errorf("Expected lettucedetect method, got %s", cfg.Metrics.HallucinationMethod)
	}
	if cfg.Metrics.ResponseRelevanceWeight != 0.5 {
		t.Errorf("Expected relevance weight 0.5, got %f", cfg.Metrics.ResponseRelevanceWeight)
	}
	if cfg.LLMProvider.Provider != "bedrock" {
		t.Errorf("Expected provider bedrock, got %s", cfg.LLMProvider.Provider)
	}
	if len(cfg.Metrics.RougeTypes) != 1 || cfg.Metrics.RougeTypes[0] != "rouge-l" {
		t.Errorf("Expected rouge types override, got %v", cfg.Metrics.RougeTypes)
	}

	// Untouched fields keep their defaults.
	if !cfg.Metrics.ResponseCompleteness {
		t.Error("Expected completeness to keep its default")
	}
	if cfg.Metrics.ResponseCompletenessWeight != 0.3 {
		t.Errorf("Expected completeness weight default 0.3, got %f", cfg.Metrics.ResponseCompletenessWeight)
	}
}

func TestMerge_NilOverrides(t *testing.T) {
	defaults := Defaults()
	cfg := Merge(defaults, nil, nopLogger())
	if cfg.Metrics.HallucinationMethod != defaults.Metrics.HallucinationMethod ||
		cfg.Metrics.Rouge != defaults.Metrics.Rouge ||
		cfg.Metrics.ResponseRelevanceWeight != defaults.Metrics.ResponseRelevanceWeight {
		t.Error("Expected nil overrides to return defaults unchanged")
	}
	if cfg.LLMProvider != defaults.LLMProvider || cfg.Report != defaults.Report {
		t.Error("Expected provider and report defaults unchanged")
	}
}

func TestParseHallucinationMethod_UnknownFallsBack(t *testing.T) {
	if got := ParseHallucinationMethod("lettucedetect", nopLogger()); got != HallucinationSpanDetector {
		t.Errorf("Expected lettucedetect, got %s", got)
	}
	if got := ParseHallucinationMethod("typo_method", nopLogger()); got != HallucinationLLMJudge {
		t.Errorf("Expected fallback to llm_judge, got %s", got)
	}
}

func TestParseRougeMethod_UnknownFallsBack(t *testing.T) {
	if got := ParseRougeMethod("llm_judge", nopLogger()); got != RougeLLMJudge {
		t.Errorf("Expected llm_judge, got %s", got)
	}
	if got := ParseRougeMethod("bogus", nopLogger()); got != RougeNGram {
		t.Errorf("Expected fallback to rouge, got %s", got)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nopLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Metrics.HallucinationMethod != HallucinationLLMJudge {
		t.Error("Expected defaults for a missing config file")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
metrics:
  rouge:
    enabled: true
    method: llm_judge
    weight: 0.2
llm_provider:
  provider: mock
report:
  output_format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nopLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.Metrics.Rouge || cfg.Metrics.RougeMethod != RougeLLMJudge {
		t.Error("Expected rouge enabled with llm_judge method")
	}
	if cfg.Metrics.RougeWeight != 0.2 {
		t.Errorf("Expected rouge weight 0.2, got %f", cfg.Metrics.RougeWeight)
	}
	if cfg.LLMProvider.Provider != "mock" {
		t.Errorf("Expected provider mock, got %s", cfg.LLMProvider.Provider)
	}
	if cfg.Report.OutputFormat != "json" {
		t.Errorf("Expected output_format json, got %s", cfg.Report.OutputFormat)
	}
	// Defaults survive for everything the file does not mention.
	if !cfg.Metrics.Hallucination {
		t.Error("Expected hallucination to keep its default")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("metrics: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path, nopLogger()); err == nil {
		t.Fatal("Expected an error for invalid YAML")
	}
}
