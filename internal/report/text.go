// Package report renders evaluation results for humans (text) and machines
// (JSON). Renderers never recompute scores; they only present what the
// orchestrator produced.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raglabs/chat-eval/internal/config"
	"github.com/raglabs/chat-eval/internal/models"
)

const divider = "================================================================"

// TextRenderer writes a readable per-turn report plus aggregate statistics.
type TextRenderer struct {
	cfg config.ReportConfig
}

func NewTextRenderer(cfg config.ReportConfig) *TextRenderer {
	return &TextRenderer{cfg: cfg}
}

func (r *TextRenderer) Render(w io.Writer, results []models.EvaluationResult) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No turns were evaluated.")
		return err
	}

	var b strings.Builder
	b.WriteString(divider + "\n")
	b.WriteString("EVALUATION REPORT\n")
	b.WriteString(divider + "\n\n")

	for i := range results {
		r.renderTurn(&b, &results[i])
	}

	renderSummary(&b, results)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TextRenderer) renderTurn(b *strings.Builder, result *models.EvaluationResult) {
	fmt.Fprintf(b, "Turn %d\n", result.TurnID)
	fmt.Fprintf(b, "  User:     %s\n", truncateLine(result.UserQuery))
	fmt.Fprintf(b, "  Response: %s\n", truncateLine(result.AIResponse))
	if result.EvaluationNote != "" {
		fmt.Fprintf(b, "  Note:     %s\n", result.EvaluationNote)
	}
	b.WriteString("\n")

	if result.Relevance != nil {
		fmt.Fprintf(b, "  Relevance & Completeness: %d/5 (relevant: %t, complete: %t)\n",
			result.Relevance.Score, result.Relevance.IsRelevant, result.Relevance.IsComplete)
		if r.cfg.IncludeDetailedExplanations {
			writeIndented(b, result.Relevance.RelevanceExplanation)
			writeIndented(b, result.Relevance.CompletenessExplanation)
			for _, aspect := range result.Relevance.MissingAspects {
				fmt.Fprintf(b, "    - missing: %s\n", aspect)
			}
		}
	}

	if result.Hallucination != nil {
		fmt.Fprintf(b, "  Hallucination: %d/5 (factual accuracy: %.1f%%)\n",
			result.Hallucination.Score, result.Hallucination.FactualAccuracy*100)
		if r.cfg.IncludeDetailedExplanations {
			writeIndented(b, result.Hallucination.Explanation)
			for _, claim := range result.Hallucination.HallucinatedClaims {
				fmt.Fprintf(b, "    - [%s/%s] %s\n", claim.Severity, claim.Category, truncateLine(claim.Claim))
			}
			for _, claim := range result.Hallucination.VerifiedClaims {
				fmt.Fprintf(b, "    + verified: %s\n", truncateLine(claim.Claim))
			}
		}
	}

	if result.Rouge != nil {
		fmt.Fprintf(b, "  ROUGE: %.3f average\n", result.Rouge.AverageScore)
		if r.cfg.IncludeDetailedExplanations {
			writeRougeMetric(b, "rouge-1", result.Rouge.Rouge1, result.Rouge.Rouge1Precision, result.Rouge.Rouge1Recall)
			writeRougeMetric(b, "rouge-2", result.Rouge.Rouge2, result.Rouge.Rouge2Precision, result.Rouge.Rouge2Recall)
			writeRougeMetric(b, "rouge-l", result.Rouge.RougeL, result.Rouge.RougeLPrecision, result.Rouge.RougeLRecall)
			writeIndented(b, result.Rouge.Explanation)
		}
	}

	if r.cfg.IncludeContextSources && len(result.ContextUsed) > 0 {
		b.WriteString("  Context sources:\n")
		for _, source := range result.ContextUsed {
			fmt.Fprintf(b, "    - %s\n", source)
		}
	}

	b.WriteString("\n")
	for _, line := range strings.Split(result.EvaluationSummary, "\n") {
		fmt.Fprintf(b, "  %s\n", line)
	}
	b.WriteString("\n" + divider + "\n\n")
}

func renderSummary(b *strings.Builder, results []models.EvaluationResult) {
	summary := summarize(results)

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(b, "  Turns evaluated: %d\n", summary.TurnsEvaluated)

	if summary.AvgRelevanceScore != nil {
		fmt.Fprintf(b, "  Average relevance:     %.2f/5\n", *summary.AvgRelevanceScore)
	}
	if summary.AvgHallucinationScore != nil {
		fmt.Fprintf(b, "  Average hallucination: %.2f/5\n", *summary.AvgHallucinationScore)
		fmt.Fprintf(b, "  Turns with hallucinations: %d/%d\n", *summary.TurnsWithHallucinations, summary.hallucinationChecked)
	}
	if summary.AvgRougeScore != nil {
		fmt.Fprintf(b, "  Average ROUGE:         %.3f\n", *summary.AvgRougeScore)
	}
	fmt.Fprintf(b, "  Average overall score: %.2f/5.0\n", summary.AvgOverallScore)
}

func writeRougeMetric(b *strings.Builder, name string, f1, precision, recall *float64) {
	if f1 == nil {
		return
	}
	fmt.Fprintf(b, "    %s: f1=%.3f", name, *f1)
	if precision != nil && recall != nil {
		fmt.Fprintf(b, " (p=%.3f, r=%.3f)", *precision, *recall)
	}
	b.WriteString("\n")
}

func writeIndented(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "    %s\n", text)
}

const maxLineLen = 120

func truncateLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLineLen {
		return s
	}
	return s[:maxLineLen] + "..."
}
