// Package orchestrator blends the individual metric strategies into one
// weighted evaluation per conversation turn.
package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/raglabs/chat-eval/internal/config"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// Metric results are reported on a 1-5 scale; the blended overall score is
// rescaled back onto 0-5 after weight renormalization.
const scoreScale = 5.0

// Judge scores above/below these bands pick the summary line tone.
const (
	goodScore       = 4
	acceptableScore = 3
	goodAccuracy    = 0.9
	goodRouge       = 0.5
	fairRouge       = 0.3
)

// Up to this many context source URLs are attached to each result.
const maxContextSources = 5

//go:generate mockgen -source=orchestrator.go -destination=mocks/mocks.go -package=mocks

// RelevanceStrategy scores how well a response addresses the user query.
type RelevanceStrategy interface {
	Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.RelevanceResult, error)
}

// HallucinationStrategy scores the factual grounding of a response.
type HallucinationStrategy interface {
	Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.HallucinationResult, error)
}

// RougeStrategy scores lexical overlap between response and context.
type RougeStrategy interface {
	Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.ROUGEResult, error)
}

// Orchestrator holds one strategy per method so dispatch is a config lookup,
// not a construction. All strategies are injected up front; a method that
// cannot be built fails at wiring time.
type Orchestrator struct {
	metrics config.MetricsConfig

	relevance          RelevanceStrategy
	judgeHallucination HallucinationStrategy
	spanHallucination  HallucinationStrategy
	ngramRouge         RougeStrategy
	judgeRouge         RougeStrategy

	logger *zerolog.Logger
}

type Option func(*Orchestrator)

func WithRelevance(s RelevanceStrategy) Option {
	return func(o *Orchestrator) { o.relevance = s }
}

func WithJudgeHallucination(s HallucinationStrategy) Option {
	return func(o *Orchestrator) { o.judgeHallucination = s }
}

func WithSpanHallucination(s HallucinationStrategy) Option {
	return func(o *Orchestrator) { o.spanHallucination = s }
}

func WithNGramRouge(s RougeStrategy) Option {
	return func(o *Orchestrator) { o.ngramRouge = s }
}

func WithJudgeRouge(s RougeStrategy) Option {
	return func(o *Orchestrator) { o.judgeRouge = s }
}

func New(metrics config.MetricsConfig, logger *zerolog.Logger, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		metrics: metrics,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.relevanceEnabled() && o.relevance == nil {
		return nil, fmt.Errorf("relevance metric enabled but no relevance strategy wired")
	}
	if metrics.Hallucination {
		if _, err := o.hallucinationStrategy(); err != nil {
			return nil, err
		}
	}
	if metrics.Rouge {
		if _, err := o.rougeStrategy(); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// relevanceEnabled reports whether the shared relevance judgment must run.
// Relevance and completeness come out of one judge call, so either flag is
// enough.
func (o *Orchestrator) relevanceEnabled() bool {
	return o.metrics.ResponseRelevance || o.metrics.ResponseCompleteness
}

func (o *Orchestrator) hallucinationStrategy() (HallucinationStrategy, error) {
	var s HallucinationStrategy
	switch o.metrics.HallucinationMethod {
	case config.HallucinationSpanDetector:
		s = o.spanHallucination
	default:
		s = o.judgeHallucination
	}
	if s == nil {
		return nil, fmt.Errorf("hallucination metric enabled but no %q strategy wired", o.metrics.HallucinationMethod)
	}
	return s, nil
}

func (o *Orchestrator) rougeStrategy() (RougeStrategy, error) {
	var s RougeStrategy
	switch o.metrics.RougeMethod {
	case config.RougeLLMJudge:
		s = o.judgeRouge
	default:
		s = o.ngramRouge
	}
	if s == nil {
		return nil, fmt.Errorf("rouge metric enabled but no %q strategy wired", o.metrics.RougeMethod)
	}
	return s, nil
}

// EvaluateTurn runs every enabled metric for one turn and blends the results
// into an overall score. A judge failure on any enabled metric fails the
// whole turn; partial results are never reported as complete.
func (o *Orchestrator) EvaluateTurn(ctx context.Context, turn models.TurnRecord, vectors []models.VectorData) (models.EvaluationResult, error) {
	result := models.EvaluationResult{
		TurnID:         turn.TurnID,
		UserQuery:      turn.UserQuery,
		AIResponse:     turn.AIResponse,
		EvaluationNote: turn.EvaluationNote,
		ContextUsed:    contextSources(vectors),
	}

	if o.relevanceEnabled() {
		relevance, err := o.relevance.Evaluate(ctx, turn.UserQuery, turn.AIResponse, vectors)
		if err != nil {
			return result, fmt.Errorf("turn %d relevance: %w", turn.TurnID, err)
		}
		result.Relevance = relevance
	}

	if o.metrics.Hallucination {
		strategy, err := o.hallucinationStrategy()
		if err != nil {
			return result, err
		}
		hallucination, err := strategy.Evaluate(ctx, turn.UserQuery, turn.AIResponse, vectors)
		if err != nil {
			return result, fmt.Errorf("turn %d hallucination: %w", turn.TurnID, err)
		}
		result.Hallucination = hallucination
	}

	if o.metrics.Rouge {
		strategy, err := o.rougeStrategy()
		if err != nil {
			return result, err
		}
		rouge, err := strategy.Evaluate(ctx, turn.UserQuery, turn.AIResponse, vectors)
		if err != nil {
			return result, fmt.Errorf("turn %d rouge: %w", turn.TurnID, err)
		}
		result.Rouge = rouge
	}

	result.OverallScore = o.overallScore(&result)
	result.EvaluationSummary = o.summarize(&result)

	o.logger.Info().
		Int("turn_id", turn.TurnID).
		Float64("overall_score", result.OverallScore).
		Msg("turn evaluation complete")

	return result, nil
}

// overallScore blends the metric scores. Judge metrics contribute their
// score normalized to 0-1; ROUGE contributes its raw 0-1 average. Weights
// renormalize over the metrics that ran, and the blend is rescaled to 0-5.
func (o *Orchestrator) overallScore(result *models.EvaluationResult) float64 {
	weightedSum := 0.0
	totalWeight := 0.0

	if result.Relevance != nil {
		normalized := float64(result.Relevance.Score) / scoreScale
		if o.metrics.ResponseRelevance {
			weightedSum += normalized * o.metrics.ResponseRelevanceWeight
			totalWeight += o.metrics.ResponseRelevanceWeight
		}
		if o.metrics.ResponseCompleteness {
			weightedSum += normalized * o.metrics.ResponseCompletenessWeight
			totalWeight += o.metrics.ResponseCompletenessWeight
		}
	}

	if result.Hallucination != nil {
		weightedSum += float64(result.Hallucination.Score) / scoreScale * o.metrics.HallucinationWeight
		totalWeight += o.metrics.HallucinationWeight
	}

	if result.Rouge != nil {
		weightedSum += result.Rouge.AverageScore * o.metrics.RougeWeight
		totalWeight += o.metrics.RougeWeight
	}

	if totalWeight == 0 {
		return 0.0
	}
	return weightedSum / totalWeight * scoreScale
}

// summarize builds the human-readable per-turn summary: one line per
// executed metric plus the overall score.
func (o *Orchestrator) summarize(result *models.EvaluationResult) string {
	var lines []string

	if result.Relevance != nil {
		if o.metrics.ResponseRelevance {
			switch {
			case result.Relevance.Score >= goodScore:
				lines = append(lines, "✅ Response is highly relevant to the question")
			case result.Relevance.Score >= acceptableScore:
				lines = append(lines, "⚠️ Response is moderately relevant to the question")
			default:
				lines = append(lines, "🚨 Response has low relevance to the question")
			}
		}
		if o.metrics.ResponseCompleteness {
			if result.Relevance.IsComplete {
				lines = append(lines, "✅ Response fully addresses the question")
			} else {
				lines = append(lines, fmt.Sprintf(
					"⚠️ Response is incomplete: %d aspect(s) missing",
					len(result.Relevance.MissingAspects)))
			}
		}
	}

	if result.Hallucination != nil {
		switch {
		case !result.Hallucination.HasHallucination:
			lines = append(lines, "✅ No hallucinations detected")
		case result.Hallucination.FactualAccuracy > goodAccuracy:
			lines = append(lines, fmt.Sprintf(
				"⚠️ Minor hallucinations detected (%d claim(s))",
				len(result.Hallucination.HallucinatedClaims)))
		default:
			lines = append(lines, fmt.Sprintf(
				"🚨 Significant hallucinations detected (%d claim(s))",
				len(result.Hallucination.HallucinatedClaims)))
		}
	}

	if result.Rouge != nil {
		switch {
		case result.Rouge.AverageScore >= goodRouge:
			lines = append(lines, fmt.Sprintf("✅ Strong context overlap (ROUGE %.2f)", result.Rouge.AverageScore))
		case result.Rouge.AverageScore >= fairRouge:
			lines = append(lines, fmt.Sprintf("⚠️ Moderate context overlap (ROUGE %.2f)", result.Rouge.AverageScore))
		default:
			lines = append(lines, fmt.Sprintf("🚨 Low context overlap (ROUGE %.2f)", result.Rouge.AverageScore))
		}
	}

	lines = append(lines, fmt.Sprintf("📊 Overall Score: %.1f/5.0", result.OverallScore))
	return strings.Join(lines, "\n")
}

// contextSources collects the source URLs shown alongside a result. Only the
// first vectors are considered, in order; later vectors never surface here
// even when an earlier one has no URL.
func contextSources(vectors []models.VectorData) []string {
	if len(vectors) > maxContextSources {
		vectors = vectors[:maxContextSources]
	}
	var sources []string
	for _, vector := range vectors {
		if vector.SourceURL == "" {
			continue
		}
		sources = append(sources, vector.SourceURL)
	}
	return sources
}
