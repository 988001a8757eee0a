package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// NGramRouge computes stemmed ROUGE-1, ROUGE-2 and ROUGE-L against the
// concatenated context texts. Reference is the context, hypothesis is the
// response: the score measures how much of the retrieved knowledge the
// response actually carries.
type NGramRouge struct {
	rougeTypes []string
	logger     *zerolog.Logger
}

func NewNGramRouge(rougeTypes []string, logger *zerolog.Logger) *NGramRouge {
	if len(rougeTypes) == 0 {
		rougeTypes = []string{"rouge-1", "rouge-2", "rouge-l"}
	}
	return &NGramRouge{
		rougeTypes: rougeTypes,
		logger:     logger,
	}
}

type rougeScore struct {
	precision float64
	recall    float64
	f1        float64
}

func (e *NGramRouge) Evaluate(_ context.Context, _ string, aiResponse string, vectors []models.VectorData) (*models.ROUGEResult, error) {
	if aiResponse == "" || len(vectors) == 0 {
		return &models.ROUGEResult{
			Explanation: "Cannot compute ROUGE: missing response or context",
		}, nil
	}

	reference := concatReference(vectors)
	if reference == "" {
		return &models.ROUGEResult{
			Explanation: "Cannot compute ROUGE: no reference text found in context",
		}, nil
	}

	refTokens := stemTokens(reference)
	hypTokens := stemTokens(aiResponse)

	result := &models.ROUGEResult{}
	var enabled []float64

	for _, rougeType := range e.rougeTypes {
		switch normalizeRougeType(rougeType) {
		case "rouge1":
			s := ngramOverlap(refTokens, hypTokens, 1)
			result.Rouge1, result.Rouge1Precision, result.Rouge1Recall = f64(s.f1), f64(s.precision), f64(s.recall)
			enabled = append(enabled, s.f1)
		case "rouge2":
			s := ngramOverlap(refTokens, hypTokens, 2)
			result.Rouge2, result.Rouge2Precision, result.Rouge2Recall = f64(s.f1), f64(s.precision), f64(s.recall)
			enabled = append(enabled, s.f1)
		case "rougel":
			s := lcsScore(refTokens, hypTokens)
			result.RougeL, result.RougeLPrecision, result.RougeLRecall = f64(s.f1), f64(s.precision), f64(s.recall)
			enabled = append(enabled, s.f1)
		default:
			e.logger.Warn().Str("rouge_type", rougeType).Msg("unknown rouge type, skipping")
		}
	}

	if len(enabled) > 0 {
		sum := 0.0
		for _, v := range enabled {
			sum += v
		}
		result.AverageScore = sum / float64(len(enabled))
		result.Explanation = fmt.Sprintf(
			"ROUGE scores computed: %d metric(s). Average F1: %.3f",
			len(enabled), result.AverageScore)
	} else {
		result.Explanation = "No ROUGE metrics enabled"
	}

	return result, nil
}

func normalizeRougeType(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", "")
}

// stemTokens lowercases, strips punctuation and stems each word, matching
// the usual ROUGE preprocessing (Porter-style stemming enabled).
func stemTokens(s string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return ' '
	}, strings.ToLower(s))

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		tokens = append(tokens, english.Stem(w, false))
	}
	return tokens
}

// ngramOverlap computes clipped n-gram counts between reference and
// hypothesis.
func ngramOverlap(ref, hyp []string, n int) rougeScore {
	refGrams := countNgrams(ref, n)
	hypGrams := countNgrams(hyp, n)

	refTotal := max(len(ref)-n+1, 0)
	hypTotal := max(len(hyp)-n+1, 0)
	if refTotal == 0 || hypTotal == 0 {
		return rougeScore{}
	}

	overlap := 0
	for gram, count := range hypGrams {
		if refCount, ok := refGrams[gram]; ok {
			overlap += min(count, refCount)
		}
	}

	return harmonic(float64(overlap)/float64(hypTotal), float64(overlap)/float64(refTotal))
}

func countNgrams(tokens []string, n int) map[string]int {
	grams := make(map[string]int)
	for i := 0; i+n <= len(tokens); i++ {
		grams[strings.Join(tokens[i:i+n], " ")]++
	}
	return grams
}

func lcsScore(ref, hyp []string) rougeScore {
	if len(ref) == 0 || len(hyp) == 0 {
		return rougeScore{}
	}
	lcs := longestCommonSubsequence(ref, hyp)
	return harmonic(float64(lcs)/float64(len(hyp)), float64(lcs)/float64(len(ref)))
}

func longestCommonSubsequence(a, b []string) int {
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return dp[len(a)][len(b)]
}

func harmonic(precision, recall float64) rougeScore {
	s := rougeScore{precision: precision, recall: recall}
	if precision+recall > 0 {
		s.f1 = 2 * precision * recall / (precision + recall)
	}
	return s
}

func f64(v float64) *float64 {
	return &v
}
