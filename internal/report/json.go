package report

import (
	"encoding/json"
	"io"

	"github.com/raglabs/chat-eval/internal/config"
	"github.com/raglabs/chat-eval/internal/models"
)

// JSONRenderer emits the full result set as an indented JSON document.
type JSONRenderer struct {
	cfg config.ReportConfig
}

func NewJSONRenderer(cfg config.ReportConfig) *JSONRenderer {
	return &JSONRenderer{cfg: cfg}
}

type jsonReport struct {
	Summary reportSummary             `json:"summary"`
	Results []models.EvaluationResult `json:"results"`
}

func (r *JSONRenderer) Render(w io.Writer, results []models.EvaluationResult) error {
	out := make([]models.EvaluationResult, len(results))
	copy(out, results)

	// Config gates strip fields rather than reorder them so the document
	// shape stays stable across runs.
	for i := range out {
		if !r.cfg.IncludeContextSources {
			out[i].ContextUsed = nil
		}
		if !r.cfg.IncludeDetailedExplanations {
			if out[i].Relevance != nil {
				trimmed := *out[i].Relevance
				trimmed.RelevanceExplanation = ""
				trimmed.CompletenessExplanation = ""
				trimmed.MissingAspects = nil
				out[i].Relevance = &trimmed
			}
			if out[i].Hallucination != nil {
				trimmed := *out[i].Hallucination
				trimmed.Explanation = ""
				trimmed.HallucinatedClaims = nil
				trimmed.VerifiedClaims = nil
				out[i].Hallucination = &trimmed
			}
			if out[i].Rouge != nil {
				trimmed := *out[i].Rouge
				trimmed.Explanation = ""
				out[i].Rouge = &trimmed
			}
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonReport{
		Summary: summarize(out),
		Results: out,
	})
}
