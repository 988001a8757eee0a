package evaluator

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"text/template"

	"github.com/raglabs/chat-eval/internal/llm"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

const (
	judgeMaxTokens   = 2048
	judgeTemperature = 0.1
)

// LLMRelevance judges relevance and completeness in a single model call;
// the two sub-scores are combined into one result and split only when the
// orchestrator applies the per-metric weights.
type LLMRelevance struct {
	client llm.Client
	logger *zerolog.Logger
}

func NewLLMRelevance(client llm.Client, logger *zerolog.Logger) *LLMRelevance {
	return &LLMRelevance{
		client: client,
		logger: logger,
	}
}

// relevanceJudgment is the JSON contract the judge is instructed to emit.
type relevanceJudgment struct {
	RelevanceScore          float64  `json:"relevance_score"`
	RelevanceExplanation    string   `json:"relevance_explanation"`
	IsRelevant              bool     `json:"is_relevant"`
	CompletenessScore       float64  `json:"completeness_score"`
	CompletenessExplanation string   `json:"completeness_explanation"`
	IsComplete              bool     `json:"is_complete"`
	MissingAspects          []string `json:"missing_aspects"`
}

func (e *LLMRelevance) Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.RelevanceResult, error) {
	prompt, err := renderPrompt(relevancePrompt, vectors, userQuery, aiResponse)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.InvokeModel(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   judgeMaxTokens,
		Temperature: judgeTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("relevance judge call: %w", err)
	}

	var judgment relevanceJudgment
	if err := extractJSON(resp.Content, &judgment); err != nil {
		e.logger.Error().Err(err).Msg("relevance judge returned unparseable output")
		return nil, err
	}

	// Halves round to even so a 2/3 split lands on 2, not 3.
	score := int(math.RoundToEven((judgment.RelevanceScore + judgment.CompletenessScore) / 2))

	e.logger.Debug().
		Int("score", score).
		Bool("is_relevant", judgment.IsRelevant).
		Bool("is_complete", judgment.IsComplete).
		Msg("relevance evaluation complete")

	return &models.RelevanceResult{
		Score:                   score,
		IsRelevant:              judgment.IsRelevant,
		IsComplete:              judgment.IsComplete,
		RelevanceExplanation:    judgment.RelevanceExplanation,
		CompletenessExplanation: judgment.CompletenessExplanation,
		MissingAspects:          judgment.MissingAspects,
	}, nil
}

func renderPrompt(tmpl *template.Template, vectors []models.VectorData, userQuery, aiResponse string) (string, error) {
	return renderPromptText(tmpl, formatContext(vectors), userQuery, aiResponse)
}

func renderPromptText(tmpl *template.Template, contextText, userQuery, aiResponse string) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptInput{
		Context:    contextText,
		UserQuery:  userQuery,
		AIResponse: aiResponse,
	})
	if err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
