package evaluator

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

func TestNGramRouge_Evaluate_IdenticalText(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	text := "The hotel offers free breakfast every morning"
	strategy := NewNGramRouge(nil, &logger)

	result, err := strategy.Evaluate(context.Background(), "q", text, []models.VectorData{{Text: text}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	for name, score := range map[string]*float64{
		"rouge-1": result.Rouge1,
		"rouge-2": result.Rouge2,
		"rouge-l": result.RougeL,
	} {
		if score == nil {
			t.Fatalf("Expected %s to be computed", name)
		}
		if math.Abs(*score-1.0) > 1e-9 {
			t.Errorf("Expected %s=1.0 for identical text, got %f", name, *score)
		}
	}
	if math.Abs(result.AverageScore-1.0) > 1e-9 {
		t.Errorf("Expected average=1.0, got %f", result.AverageScore)
	}
}

func TestNGramRouge_Evaluate_DisjointText(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	strategy := NewNGramRouge(nil, &logger)
	result, err := strategy.Evaluate(context.Background(), "q",
		"completely different words here",
		[]models.VectorData{{Text: "nothing matches whatsoever today"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.AverageScore != 0 {
		t.Errorf("Expected average=0 for disjoint text, got %f", result.AverageScore)
	}
}

func TestNGramRouge_Evaluate_Stemming(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	// "offers"/"offer" and "mornings"/"morning" stem to the same tokens.
	strategy := NewNGramRouge([]string{"rouge-1"}, &logger)
	result, err := strategy.Evaluate(context.Background(), "q",
		"offer morning",
		[]models.VectorData{{Text: "offers mornings"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Rouge1 == nil || math.Abs(*result.Rouge1-1.0) > 1e-9 {
		t.Errorf("Expected stemmed unigram match of 1.0, got %v", result.Rouge1)
	}
	if result.Rouge2 != nil {
		t.Error("rouge-2 should not be computed when only rouge-1 is enabled")
	}
}

func TestNGramRouge_Evaluate_MultipleVectorsJoined(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	strategy := NewNGramRouge([]string{"rouge-1"}, &logger)
	result, err := strategy.Evaluate(context.Background(), "q",
		"breakfast checkout",
		[]models.VectorData{{Text: "breakfast"}, {Text: "checkout"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if result.Rouge1 == nil || math.Abs(*result.Rouge1-1.0) > 1e-9 {
		t.Errorf("Expected full overlap against joined vectors, got %v", result.Rouge1)
	}
}

func TestNGramRouge_Evaluate_MissingInputs(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	strategy := NewNGramRouge(nil, &logger)

	result, err := strategy.Evaluate(context.Background(), "q", "", testVectors())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.Explanation != "Cannot compute ROUGE: missing response or context" {
		t.Errorf("Unexpected explanation: %q", result.Explanation)
	}
	if result.Rouge1 != nil || result.AverageScore != 0 {
		t.Error("Expected an empty result for a missing response")
	}

	result, err = strategy.Evaluate(context.Background(), "q", "answer", []models.VectorData{{Text: ""}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.Explanation != "Cannot compute ROUGE: no reference text found in context" {
		t.Errorf("Unexpected explanation: %q", result.Explanation)
	}
}

func TestNGramRouge_Evaluate_UnknownTypeSkipped(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	strategy := NewNGramRouge([]string{"rouge-9"}, &logger)
	result, err := strategy.Evaluate(context.Background(), "q", "text", []models.VectorData{{Text: "text"}})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if result.Explanation != "No ROUGE metrics enabled" {
		t.Errorf("Unexpected explanation: %q", result.Explanation)
	}
}

func TestNGramRouge_TypeNameNormalization(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	// "rouge1" and "ROUGE-1" both select the unigram metric.
	for _, name := range []string{"rouge1", "ROUGE-1"} {
		strategy := NewNGramRouge([]string{name}, &logger)
		result, err := strategy.Evaluate(context.Background(), "q", "text", []models.VectorData{{Text: "text"}})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if result.Rouge1 == nil {
			t.Errorf("Type name %q should select rouge-1", name)
		}
	}
}

func TestLongestCommonSubsequence(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected int
	}{
		{name: "identical", a: []string{"a", "b", "c"}, b: []string{"a", "b", "c"}, expected: 3},
		{name: "subsequence with gap", a: []string{"a", "x", "b", "y", "c"}, b: []string{"a", "b", "c"}, expected: 3},
		{name: "no overlap", a: []string{"a", "b"}, b: []string{"x", "y"}, expected: 0},
		{name: "order matters", a: []string{"a", "b"}, b: []string{"b", "a"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestCommonSubsequence(tt.a, tt.b); got != tt.expected {
				t.Errorf("Expected LCS=%d, got %d", tt.expected, got)
			}
		})
	}
}
