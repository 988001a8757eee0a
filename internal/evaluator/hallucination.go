package evaluator

import (
	"context"
	"fmt"

	"github.com/raglabs/chat-eval/internal/llm"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// LLMHallucination asks a judge model to enumerate factual claims, classify
// the unsupported ones, and report aggregate accuracy. The aggregate fields
// are taken from the judge as-is rather than recomputed from the claim list.
type LLMHallucination struct {
	client llm.Client
	logger *zerolog.Logger
}

func NewLLMHallucination(client llm.Client, logger *zerolog.Logger) *LLMHallucination {
	return &LLMHallucination{
		client: client,
		logger: logger,
	}
}

type hallucinationJudgment struct {
	HallucinationScore int                        `json:"hallucination_score"`
	HasHallucination   bool                       `json:"has_hallucination"`
	FactualAccuracy    float64                    `json:"factual_accuracy"`
	HallucinatedClaims []models.HallucinatedClaim `json:"hallucinated_claims"`
	VerifiedClaims     []models.VerifiedClaim     `json:"verified_claims"`
	Explanation        string                     `json:"explanation"`
}

func (e *LLMHallucination) Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.HallucinationResult, error) {
	prompt, err := renderPrompt(hallucinationPrompt, vectors, userQuery, aiResponse)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.InvokeModel(ctx, llm.Request{
		Prompt:      prompt,
		MaxTokens:   judgeMaxTokens,
		Temperature: judgeTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("hallucination judge call: %w", err)
	}

	var judgment hallucinationJudgment
	if err := extractJSON(resp.Content, &judgment); err != nil {
		e.logger.Error().Err(err).Msg("hallucination judge returned unparseable output")
		return nil, err
	}

	e.logger.Debug().
		Int("score", judgment.HallucinationScore).
		Bool("has_hallucination", judgment.HasHallucination).
		Int("claims", len(judgment.HallucinatedClaims)).
		Msg("hallucination evaluation complete")

	return &models.HallucinationResult{
		Score:              judgment.HallucinationScore,
		HasHallucination:   judgment.HasHallucination,
		FactualAccuracy:    judgment.FactualAccuracy,
		HallucinatedClaims: judgment.HallucinatedClaims,
		VerifiedClaims:     judgment.VerifiedClaims,
		Explanation:        judgment.Explanation,
	}, nil
}
