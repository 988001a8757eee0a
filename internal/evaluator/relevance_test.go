package evaluator

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/raglabs/chat-eval/internal/llm"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// MockLLMClient is a fake judge client for testing
type MockLLMClient struct {
	ResponseToReturn *llm.Response
	ErrorToReturn    error

	WasCalled   bool
	LastRequest *llm.Request
}

func (m *MockLLMClient) InvokeModel(ctx context.Context, request llm.Request) (*llm.Response, error) {
	m.WasCalled = true
	m.LastRequest = &request
	return m.ResponseToReturn, m.ErrorToReturn
}

func testVectors() []models.VectorData {
	return []models.VectorData{
		{ID: 1, Text: "The hotel offers free breakfast from 7am to 10am.", SourceURL: "https://example.com/breakfast"},
		{ID: 2, Text: "Checkout is at 11am."},
	}
}

func TestLLMRelevance_Evaluate_HappyPath(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.Response{
			Content: `{
				"relevance_score": 5,
				"relevance_explanation": "Directly answers the breakfast question",
				"is_relevant": true,
				"completeness_score": 4,
				"completeness_explanation": "Missing the location",
				"is_complete": false,
				"missing_aspects": ["breakfast location"]
			}`,
			StopReason: "end_turn",
		},
	}

	strategy := NewLLMRelevance(mockClient, &logger)
	result, err := strategy.Evaluate(context.Background(), "When is breakfast?", "Breakfast is from 7am to 10am.", testVectors())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	if !mockClient.WasCalled {
		t.Error("Expected the mock LLM client to be called, but it wasn't")
	}

	// (5 + 4) / 2 = 4.5 rounds to 5
	if result.Score != 5 {
		t.Errorf("Expected score=5, got %d", result.Score)
	}
	if !result.IsRelevant {
		t.Error("Expected is_relevant=true")
	}
	if result.IsComplete {
		t.Error("Expected is_complete=false")
	}
	if len(result.MissingAspects) != 1 || result.MissingAspects[0] != "breakfast location" {
		t.Errorf("Expected one missing aspect, got %v", result.MissingAspects)
	}

	if mockClient.LastRequest.MaxTokens != judgeMaxTokens {
		t.Errorf("Expected MaxTokens=%d, got %d", judgeMaxTokens, mockClient.LastRequest.MaxTokens)
	}
	if mockClient.LastRequest.Temperature != judgeTemperature {
		t.Errorf("Expected Temperature=%v, got %v", judgeTemperature, mockClient.LastRequest.Temperature)
	}
}

func TestLLMRelevance_Evaluate_PromptContainsContext(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.Response{
			Content: `{"relevance_score": 3, "completeness_score": 3, "is_relevant": true, "is_complete": true}`,
		},
	}

	strategy := NewLLMRelevance(mockClient, &logger)
	if _, err := strategy.Evaluate(context.Background(), "When is breakfast?", "7am.", testVectors()); err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	prompt := mockClient.LastRequest.Prompt
	if !strings.Contains(prompt, "free breakfast from 7am to 10am") {
		t.Error("Expected prompt to contain the context text")
	}
	if !strings.Contains(prompt, "[Source 1] https://example.com/breakfast") {
		t.Error("Expected prompt to contain the numbered source URL")
	}
	if !strings.Contains(prompt, "[Source 2] Unknown source") {
		t.Error("Expected vectors without a URL to render as Unknown source")
	}
	if !strings.Contains(prompt, "When is breakfast?") {
		t.Error("Expected prompt to contain the user query")
	}
}

func TestLLMRelevance_Evaluate_LlmApiError(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	mockClient := &MockLLMClient{
		ErrorToReturn: errors.New("API failed"),
	}

	strategy := NewLLMRelevance(mockClient, &logger)
	_, err := strategy.Evaluate(context.Background(), "query", "answer", testVectors())
	if err == nil {
		t.Fatal("Expected an error when the judge call fails")
	}
}

func TestLLMRelevance_Evaluate_InvalidJsonFormat(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	mockClient := &MockLLMClient{
		ResponseToReturn: &llm.Response{Content: "This is plain text, not JSON"},
	}

	strategy := NewLLMRelevance(mockClient, &logger)
	_, err := strategy.Evaluate(context.Background(), "query", "answer", testVectors())
	if err == nil {
		t.Fatal("Expected an error for unparseable judge output")
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected a *ParseError, got %T", err)
	}
}

func TestLLMRelevance_ScoreRounding(t *testing.T) {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	tests := []struct {
		name         string
		relevance    string
		completeness string
		expected     int
	}{
		{name: "equal scores", relevance: "4", completeness: "4", expected: 4},
		{name: "half rounds to even, up", relevance: "3", completeness: "4", expected: 4},
		{name: "half rounds to even, down", relevance: "2", completeness: "3", expected: 2},
		{name: "half rounds to even, low pair", relevance: "1", completeness: "2", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockLLMClient{
				ResponseToReturn: &llm.Response{
					Content: `{"relevance_score": ` + tt.relevance + `, "completeness_score": ` + tt.completeness + `, "is_relevant": true, "is_complete": true}`,
				},
			}

			strategy := NewLLMRelevance(mockClient, &logger)
			result, err := strategy.Evaluate(context.Background(), "q", "a", testVectors())
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if result.Score != tt.expected {
				t.Errorf("Expected score=%d, got %d", tt.expected, result.Score)
			}
		})
	}
}
