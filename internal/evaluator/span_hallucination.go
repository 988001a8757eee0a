package evaluator

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/raglabs/chat-eval/internal/models"
	"github.com/raglabs/chat-eval/internal/spandetect"
	"github.com/rs/zerolog"
)

// Noise filter: spans shorter than this (non-punctuation characters) or
// below this confidence are discarded.
const (
	minSpanChars      = 5
	minSpanConfidence = 0.8
)

// Severity bands over retained spans. The discard threshold already
// guarantees confidence >= 0.8, so the bands sit above it.
const (
	highSeverityConfidence   = 0.95
	mediumSeverityConfidence = 0.9
)

// SpanHallucination detects hallucinations with a span-prediction model
// instead of a judge. Unlike the judge strategies it degrades instead of
// aborting: any detector failure yields a neutral result so one missing
// inference service cannot kill a batch run.
type SpanHallucination struct {
	detector spandetect.Detector
	logger   *zerolog.Logger
}

func NewSpanHallucination(detector spandetect.Detector, logger *zerolog.Logger) *SpanHallucination {
	return &SpanHallucination{
		detector: detector,
		logger:   logger,
	}
}

func (e *SpanHallucination) Evaluate(ctx context.Context, userQuery, aiResponse string, vectors []models.VectorData) (*models.HallucinationResult, error) {
	if aiResponse == "" || len(vectors) == 0 {
		return &models.HallucinationResult{
			Score:           1,
			FactualAccuracy: 0.0,
			Explanation:     "Cannot evaluate: missing response or context",
		}, nil
	}

	contexts := make([]string, 0, len(vectors))
	for _, vector := range vectors {
		if vector.Text != "" {
			contexts = append(contexts, vector.Text)
		}
	}
	if len(contexts) == 0 {
		return &models.HallucinationResult{
			Score:           1,
			FactualAccuracy: 0.0,
			Explanation:     "Cannot evaluate: no context text found",
		}, nil
	}

	predictions, err := e.detector.Predict(ctx, contexts, userQuery, aiResponse)
	if err != nil {
		e.logger.Warn().Err(err).Msg("span detector failed, returning neutral result")
		return &models.HallucinationResult{
			Score:            3,
			HasHallucination: false,
			FactualAccuracy:  0.5,
			Explanation:      fmt.Sprintf("Span detection error: %v", err),
		}, nil
	}

	var claims []models.HallucinatedClaim
	hallucinatedLength := 0
	for _, span := range predictions {
		text := span.Text
		if text == "" && span.Start >= 0 && span.End <= len(aiResponse) && span.Start < span.End {
			text = aiResponse[span.Start:span.End]
		}
		if nonPunctLen(strings.TrimSpace(text)) < minSpanChars || span.Confidence < minSpanConfidence {
			continue
		}

		claims = append(claims, models.HallucinatedClaim{
			Claim:       strings.TrimSpace(text),
			Category:    models.CategoryFabricated,
			Explanation: fmt.Sprintf("Detected unsupported claim with confidence %.2f", span.Confidence),
			Severity:    severityFor(span.Confidence),
			Start:       span.Start,
			End:         span.End,
			Confidence:  span.Confidence,
		})
		hallucinatedLength += span.End - span.Start
	}

	factualAccuracy := 1.0 - float64(hallucinatedLength)/float64(len(aiResponse))
	factualAccuracy = clamp01(factualAccuracy)

	hasHallucination := len(claims) > 0
	score := scoreFromAccuracy(hasHallucination, factualAccuracy)

	var verified []models.VerifiedClaim
	if !hasHallucination {
		verified = append(verified, models.VerifiedClaim{
			Claim:         aiResponse,
			SourceSnippet: "Full response verified against context",
		})
	}

	return &models.HallucinationResult{
		Score:              score,
		HasHallucination:   hasHallucination,
		FactualAccuracy:    factualAccuracy,
		HallucinatedClaims: claims,
		VerifiedClaims:     verified,
		Explanation: fmt.Sprintf(
			"Span analysis: %d hallucinated span(s) detected. Factual accuracy: %.1f%%",
			len(claims), factualAccuracy*100),
	}, nil
}

func severityFor(confidence float64) models.Severity {
	switch {
	case confidence >= highSeverityConfidence:
		return models.SeverityHigh
	case confidence >= mediumSeverityConfidence:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func scoreFromAccuracy(hasHallucination bool, accuracy float64) int {
	switch {
	case !hasHallucination:
		return 5
	case accuracy > 0.9:
		return 4
	case accuracy > 0.7:
		return 3
	case accuracy > 0.5:
		return 2
	default:
		return 1
	}
}

func nonPunctLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsPunct(r) {
			n++
		}
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
