// Package evaluator holds the scoring strategies: LLM-judge relevance and
// hallucination, span-detector hallucination, and the two ROUGE variants.
// Each strategy scores one (query, response, context) triple and never
// mutates its inputs.
package evaluator

import (
	"fmt"
	"strings"

	"github.com/raglabs/chat-eval/internal/models"
)

// formatContext renders context vectors into numbered source blocks for
// judge prompts.
func formatContext(vectors []models.VectorData) string {
	parts := make([]string, 0, len(vectors))
	for i, vector := range vectors {
		source := vector.SourceURL
		if source == "" {
			source = "Unknown source"
		}
		parts = append(parts, fmt.Sprintf("[Source %d] %s\n%s", i+1, source, vector.Text))
	}
	return strings.Join(parts, "\n\n---\n\n")
}

// concatReference joins all context texts into the single reference string
// used by the n-gram ROUGE computation.
func concatReference(vectors []models.VectorData) string {
	parts := make([]string, 0, len(vectors))
	for _, vector := range vectors {
		if vector.Text != "" {
			parts = append(parts, vector.Text)
		}
	}
	return strings.Join(parts, " ")
}
