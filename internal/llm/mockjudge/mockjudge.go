// Package mockjudge provides a judge transport that answers evaluation
// prompts with rule-based heuristics instead of a model call. It implements
// the same llm.Client interface as the real providers, so the rest of the
// pipeline cannot tell it apart from one.
package mockjudge

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/raglabs/chat-eval/internal/llm"
)

type Client struct{}

func NewClient() *Client {
	return &Client{}
}

var (
	responseSection = regexp.MustCompile(`(?s)AI Response to Evaluate:\n(.+?)(\n\n|$)`)
	contextSection  = regexp.MustCompile(`(?s)(?:Ground Truth Context|Context Information).*?:\n(.+?)(\n\n##|$)`)
)

func (c *Client) InvokeModel(_ context.Context, request llm.Request) (*llm.Response, error) {
	prompt := request.Prompt

	aiResponse := ""
	if m := responseSection.FindStringSubmatch(prompt); m != nil {
		aiResponse = strings.TrimSpace(m[1])
	}
	contextText := ""
	if m := contextSection.FindStringSubmatch(prompt); m != nil {
		contextText = strings.TrimSpace(m[1])
	}

	overlap := wordOverlap(aiResponse, contextText)

	var payload map[string]any
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "rouge"):
		payload = rougeJudgment(overlap)
	case strings.Contains(lower, "hallucination"):
		payload = hallucinationJudgment(overlap)
	default:
		payload = relevanceJudgment(overlap, aiResponse)
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &llm.Response{
		Content:    string(content),
		StopReason: "end_turn",
	}, nil
}

// wordOverlap is the fraction of the response's unique words that also
// appear in the context.
func wordOverlap(response, context string) float64 {
	responseWords := uniqueWords(response)
	contextWords := uniqueWords(context)

	shared := 0
	for w := range responseWords {
		if contextWords[w] {
			shared++
		}
	}

	total := len(responseWords)
	if total == 0 {
		total = 1
	}
	return float64(shared) / float64(total)
}

func uniqueWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		words[w] = true
	}
	return words
}

func hallucinationJudgment(overlap float64) map[string]any {
	hasHallucination := overlap < 0.3

	score := 2
	if overlap > 0.5 {
		score = 5
	} else if overlap > 0.3 {
		score = 3
	}

	claims := []map[string]any{}
	if hasHallucination {
		claims = append(claims, map[string]any{
			"claim":       "Low overlap between response and context",
			"category":    "unsupported",
			"explanation": "Heuristic detection based on word overlap",
			"severity":    "low",
		})
	}

	return map[string]any{
		"hallucination_score": score,
		"has_hallucination":   hasHallucination,
		"factual_accuracy":    overlap,
		"hallucinated_claims": claims,
		"verified_claims":     []map[string]any{},
		"explanation":         "Heuristic analysis: response/context word overlap",
	}
}

func relevanceJudgment(overlap float64, aiResponse string) map[string]any {
	relevanceScore := 3
	if overlap > 0.2 {
		relevanceScore = 4
	}

	return map[string]any{
		"relevance_score":          relevanceScore,
		"relevance_explanation":    "Heuristic relevance analysis",
		"is_relevant":              overlap > 0.1,
		"completeness_score":       4,
		"completeness_explanation": "Heuristic completeness analysis",
		"is_complete":              len(aiResponse) > 50,
		"missing_aspects":          []string{},
	}
}

func rougeJudgment(overlap float64) map[string]any {
	return map[string]any{
		"rouge_1":     overlap,
		"rouge_2":     overlap * 0.8,
		"rouge_l":     overlap * 0.9,
		"explanation": "Heuristic coverage estimate from word overlap",
	}
}
