package evaluator

import (
	"context"
	"fmt"

	"github.com/raglabs/chat-eval/internal/llm"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// LLMRouge asks a judge model to estimate ROUGE-style overlap instead of
// counting n-grams. If the judge call fails or returns garbage it falls back
// to the exact n-gram computation, so this strategy always produces a result.
type LLMRouge struct {
	client   llm.Client
	fallback *NGramRouge
	logger   *zerolog.Logger
}

func NewLLMRouge(client llm.Client, fallback *NGramRouge, logger *zerolog.Logger) *LLMRouge {
	return &LLMRouge{
		client:   client,
		fallback: fallback,
		logger:   logger,
	}
}

type rougeJudgment struct {
	Rouge1          *float64 `json:"rouge_1"`
	Rouge2          *float64 `json:"rouge_2"`
	RougeL          *float64 `json:"rouge_l"`
	Rouge1Precision *float64 `json:"rouge_1_precision"`
	Rouge1Recall    *float64 `json:"rouge_1_recall"`
	Rouge2Precision *float64 `json:"rouge_2_precision"`
	Rouge2Recall    *float64 `json:"rouge_2_recall"`
	RougeLPrecision *float64 `json:"rouge_l_precision"`
	RougeLRecall    *float64 `json:"rouge_l_recall"`
	Explanation     string   `json:"explanation"`
}

func (e *LLMRouge) Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.ROUGEResult, error) {
	if aiResponse == "" || len(vectors) == 0 {
		return &models.ROUGEResult{
			Explanation: "Cannot compute ROUGE: missing response or context",
		}, nil
	}

	contextText := formatContext(vectors)
	prompt, err := renderPromptText(rougePrompt, contextText, userQuery, aiResponse)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.InvokeModel(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   judgeMaxTokens,
		Temperature: judgeTemperature,
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("rouge judge call failed, falling back to n-gram computation")
		return e.fallback.Evaluate(ctx, userQuery, aiResponse, vectors)
	}

	var judgment rougeJudgment
	if err := extractJSON(resp.Content, &judgment); err != nil {
		e.logger.Warn().Err(err).Msg("rouge judge returned unparseable output, falling back to n-gram computation")
		return e.fallback.Evaluate(ctx, userQuery, aiResponse, vectors)
	}

	result := &models.ROUGEResult{
		Rouge1:          judgment.Rouge1,
		Rouge2:          judgment.Rouge2,
		RougeL:          judgment.RougeL,
		Rouge1Precision: judgment.Rouge1Precision,
		Rouge1Recall:    judgment.Rouge1Recall,
		Rouge2Precision: judgment.Rouge2Precision,
		Rouge2Recall:    judgment.Rouge2Recall,
		RougeLPrecision: judgment.RougeLPrecision,
		RougeLRecall:    judgment.RougeLRecall,
	}

	var scores []float64
	for _, v := range []*float64{judgment.Rouge1, judgment.Rouge2, judgment.RougeL} {
		if v != nil {
			scores = append(scores, clamp01(*v))
		}
	}
	if len(scores) == 0 {
		e.logger.Warn().Msg("rouge judge returned no scores, falling back to n-gram computation")
		return e.fallback.Evaluate(ctx, userQuery, aiResponse, vectors)
	}

	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	result.AverageScore = sum / float64(len(scores))

	result.Explanation = judgment.Explanation
	if result.Explanation == "" {
		result.Explanation = fmt.Sprintf(
			"ROUGE scores computed: %d metric(s). Average F1: %.3f",
			len(scores), result.AverageScore)
	}

	e.logger.Debug().Float64("average", result.AverageScore).Msg("rouge evaluation complete")
	return result, nil
}
