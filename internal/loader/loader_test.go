package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

func newTestLoader() *Loader {
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	return New(&logger)
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadConversation_StrictJSON(t *testing.T) {
	path := writeTempFile(t, `{
		"chat_id": 42,
		"user_id": 7,
		"conversation_turns": [
			{"turn": 1, "role": "User", "message": "Hi"},
			{"turn": 2, "role": "AI/Chatbot", "message": "Hello!"}
		]
	}`)

	conversation, err := newTestLoader().LoadConversation(path)
	if err != nil {
		t.Fatalf("LoadConversation failed: %v", err)
	}
	if conversation.ChatID != 42 {
		t.Errorf("Expected chat_id=42, got %d", conversation.ChatID)
	}
	if len(conversation.ConversationTurns) != 2 {
		t.Errorf("Expected 2 turns, got %d", len(conversation.ConversationTurns))
	}
}

func TestLoadConversation_RepairsMalformedJSON(t *testing.T) {
	// Comment lines and trailing commas, as the export tool produces them.
	path := writeTempFile(t, `{
		// exported 2024-11-02
		"chat_id": 42,
		"conversation_turns": [
			{"turn": 1, "role": "User", "message": "Hi",},
		],
	}`)

	conversation, err := newTestLoader().LoadConversation(path)
	if err != nil {
		t.Fatalf("Expected repair to succeed, got: %v", err)
	}
	if conversation.ChatID != 42 {
		t.Errorf("Expected chat_id=42, got %d", conversation.ChatID)
	}
	if len(conversation.ConversationTurns) != 1 {
		t.Errorf("Expected 1 turn, got %d", len(conversation.ConversationTurns))
	}
}

func TestLoadConversation_UnrepairableJSON(t *testing.T) {
	path := writeTempFile(t, `{"chat_id": 42, "conversation_turns": [`)

	if _, err := newTestLoader().LoadConversation(path); err == nil {
		t.Fatal("Expected an error for unrepairable JSON")
	}
}

func TestLoadConversation_MissingFile(t *testing.T) {
	if _, err := newTestLoader().LoadConversation("/nonexistent/conversation.json"); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestRepairJSON_ValidInputUnchanged(t *testing.T) {
	valid := `{"a": [1, 2], "b": "text with // not a comment"}`
	if got := string(repairJSON([]byte(valid))); got != valid {
		t.Errorf("Repair changed already-valid JSON:\n%s", got)
	}
}

func TestAIResponsesWithContext_Pairing(t *testing.T) {
	conversation := &models.Conversation{
		ConversationTurns: []models.ConversationTurn{
			{Turn: 1, Role: models.RoleUser, Message: "When is breakfast?"},
			{Turn: 2, Role: models.RoleAI, Message: "From 7am.", EvaluationNote: "checked manually"},
			{Turn: 3, Role: models.RoleAI, Message: "Anything else?"},
			{Turn: 4, Role: models.RoleUser, Message: "Where is the gym?"},
			{Turn: 5, Role: models.RoleAI, Message: "Second floor."},
		},
	}

	records := newTestLoader().AIResponsesWithContext(conversation)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d: %+v", len(records), records)
	}

	if records[0].UserQuery != "When is breakfast?" || records[0].AIResponse != "From 7am." {
		t.Errorf("Unexpected first pairing: %+v", records[0])
	}
	if records[0].EvaluationNote != "checked manually" {
		t.Errorf("Expected evaluation note carried over, got %q", records[0].EvaluationNote)
	}

	// Turn 3 follows another AI turn, not a user turn, so it is not evaluable.
	if records[1].UserQuery != "Where is the gym?" || records[1].TurnID != 5 {
		t.Errorf("Unexpected second pairing: %+v", records[1])
	}
	for _, record := range records {
		if record.TurnID == 3 {
			t.Errorf("AI turn without an adjacent user query must be skipped: %+v", record)
		}
	}
}

func TestAIResponsesWithContext_LeadingAITurnSkipped(t *testing.T) {
	conversation := &models.Conversation{
		ConversationTurns: []models.ConversationTurn{
			{Turn: 1, Role: models.RoleAI, Message: "Welcome! How can I help?"},
			{Turn: 2, Role: models.RoleUser, Message: "Hi"},
			{Turn: 3, Role: models.RoleAI, Message: "Hello!"},
		},
	}

	records := newTestLoader().AIResponsesWithContext(conversation)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record (greeting skipped), got %d", len(records))
	}
	if records[0].TurnID != 3 {
		t.Errorf("Expected turn 3, got %d", records[0].TurnID)
	}
}

func TestExtractContextForTurn_UsedPlusRanked(t *testing.T) {
	response := &models.ContextVectorsResponse{
		Data: models.ContextVectorsData{
			VectorData: []models.VectorData{
				{ID: 1, Text: "one"},
				{ID: 2, Text: "two"},
				{ID: 3, Text: "three"},
				{ID: 4, Text: "four"},
			},
			Sources: models.VectorSources{
				VectorsUsed: []int{3},
				VectorsInfo: []models.VectorInfo{
					{VectorID: 1, Score: 0.2},
					{VectorID: 2, Score: 0.9},
					{VectorID: 3, Score: 0.8},
					{VectorID: 4, Score: 0.5},
				},
			},
		},
	}

	vectors := newTestLoader().ExtractContextForTurn(response)

	if len(vectors) != 4 {
		t.Fatalf("Expected 4 vectors, got %d", len(vectors))
	}
	// Used vector first, then the rest by score descending.
	expectedOrder := []int{3, 2, 4, 1}
	for i, id := range expectedOrder {
		if vectors[i].ID != id {
			t.Errorf("Position %d: expected vector %d, got %d", i, id, vectors[i].ID)
		}
	}
}

func TestExtractContextForTurn_ExtraVectorsCapped(t *testing.T) {
	data := models.ContextVectorsData{
		Sources: models.VectorSources{VectorsUsed: []int{0}},
	}
	for i := 0; i < 20; i++ {
		data.VectorData = append(data.VectorData, models.VectorData{ID: i, Text: "p"})
		if i > 0 {
			data.Sources.VectorsInfo = append(data.Sources.VectorsInfo,
				models.VectorInfo{VectorID: i, Score: float64(i)})
		}
	}

	vectors := newTestLoader().ExtractContextForTurn(&models.ContextVectorsResponse{Data: data})

	// 1 used + at most 10 ranked extras.
	if len(vectors) != 1+maxExtraVectors {
		t.Errorf("Expected %d vectors, got %d", 1+maxExtraVectors, len(vectors))
	}
}

func TestExtractContextForTurn_NoUsageInfoFallback(t *testing.T) {
	data := models.ContextVectorsData{}
	for i := 0; i < 20; i++ {
		data.VectorData = append(data.VectorData, models.VectorData{ID: i, Text: "p"})
	}

	vectors := newTestLoader().ExtractContextForTurn(&models.ContextVectorsResponse{Data: data})

	if len(vectors) != maxFallbackVectors {
		t.Errorf("Expected first %d vectors, got %d", maxFallbackVectors, len(vectors))
	}
	if vectors[0].ID != 0 {
		t.Errorf("Expected export order preserved, got first ID %d", vectors[0].ID)
	}
}
