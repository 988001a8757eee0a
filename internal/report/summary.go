package report

import "github.com/raglabs/chat-eval/internal/models"

// reportSummary aggregates over the evaluated turns. Averages cover only the
// turns where the metric actually ran; a metric that never ran is omitted.
type reportSummary struct {
	TurnsEvaluated          int      `json:"turns_evaluated"`
	AvgOverallScore         float64  `json:"avg_overall_score"`
	AvgRelevanceScore       *float64 `json:"avg_relevance_score,omitempty"`
	AvgHallucinationScore   *float64 `json:"avg_hallucination_score,omitempty"`
	TurnsWithHallucinations *int     `json:"turns_with_hallucinations,omitempty"`
	AvgRougeScore           *float64 `json:"avg_rouge_score,omitempty"`

	hallucinationChecked int
}

func summarize(results []models.EvaluationResult) reportSummary {
	summary := reportSummary{TurnsEvaluated: len(results)}
	if len(results) == 0 {
		return summary
	}

	var relevanceSum, hallucinationSum, rougeSum, overallSum float64
	var relevanceCount, hallucinatedTurns, rougeCount int

	for i := range results {
		result := &results[i]
		overallSum += result.OverallScore
		if result.Relevance != nil {
			relevanceSum += float64(result.Relevance.Score)
			relevanceCount++
		}
		if result.Hallucination != nil {
			hallucinationSum += float64(result.Hallucination.Score)
			summary.hallucinationChecked++
			if result.Hallucination.HasHallucination {
				hallucinatedTurns++
			}
		}
		if result.Rouge != nil {
			rougeSum += result.Rouge.AverageScore
			rougeCount++
		}
	}

	summary.AvgOverallScore = overallSum / float64(len(results))
	if relevanceCount > 0 {
		avg := relevanceSum / float64(relevanceCount)
		summary.AvgRelevanceScore = &avg
	}
	if summary.hallucinationChecked > 0 {
		avg := hallucinationSum / float64(summary.hallucinationChecked)
		summary.AvgHallucinationScore = &avg
		summary.TurnsWithHallucinations = &hallucinatedTurns
	}
	if rougeCount > 0 {
		avg := rougeSum / float64(rougeCount)
		summary.AvgRougeScore = &avg
	}
	return summary
}
