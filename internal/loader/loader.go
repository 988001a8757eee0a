// Package loader reads exported conversation and context-vector dumps.
// Exports come out of an admin tool that leaves comment lines and trailing
// commas in the JSON, so loading first attempts a strict parse and then a
// repaired one.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// Context selection caps: vectors the generator actually used always ride
// along; the rest are ranked by retrieval score.
const (
	maxExtraVectors    = 10
	maxFallbackVectors = 15
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

type Loader struct {
	logger *zerolog.Logger
}

func New(logger *zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// LoadConversation reads a conversation export, repairing malformed JSON if
// the strict parse fails.
func (l *Loader) LoadConversation(path string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := l.loadJSON(path, &conversation); err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", path, err)
	}

	l.logger.Info().
		Str("path", path).
		Int("chat_id", conversation.ChatID).
		Int("turns", len(conversation.ConversationTurns)).
		Msg("conversation loaded")

	return &conversation, nil
}

// LoadContextVectors reads a context-vectors export.
func (l *Loader) LoadContextVectors(path string) (*models.ContextVectorsResponse, error) {
	var response models.ContextVectorsResponse
	if err := l.loadJSON(path, &response); err != nil {
		return nil, fmt.Errorf("load context vectors %s: %w", path, err)
	}

	l.logger.Info().
		Str("path", path).
		Int("vectors", len(response.Data.VectorData)).
		Msg("context vectors loaded")

	return &response, nil
}

func (l *Loader) loadJSON(path string, v any) (err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(raw, v); err == nil {
		return nil
	}

	l.logger.Warn().Str("path", path).Msg("strict JSON parse failed, attempting repair")
	if repairErr := json.Unmarshal(repairJSON(raw), v); repairErr != nil {
		return fmt.Errorf("parse failed even after repair: %w", err)
	}
	return nil
}

// repairJSON strips comment lines and trailing commas, the two defects the
// export tool is known to produce.
func repairJSON(raw []byte) []byte {
	lines := strings.Split(string(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		kept = append(kept, line)
	}
	cleaned := strings.Join(kept, "\n")
	return []byte(trailingComma.ReplaceAllString(cleaned, "$1"))
}

// AIResponsesWithContext pairs each AI turn with the user turn immediately
// before it. An AI turn that does not directly follow a user turn (a greeting,
// or a follow-up message in a multi-part answer) has no query of its own and
// is skipped.
func (l *Loader) AIResponsesWithContext(conversation *models.Conversation) []models.TurnRecord {
	var records []models.TurnRecord
	turns := conversation.ConversationTurns

	for i := range turns {
		turn := &turns[i]
		if turn.Role != models.RoleAI {
			continue
		}
		if i == 0 || turns[i-1].Role != models.RoleUser {
			l.logger.Warn().Int("turn", turn.Turn).Msg("AI turn does not follow a user turn, skipping")
			continue
		}
		records = append(records, models.TurnRecord{
			TurnID:         turn.Turn,
			UserQuery:      turns[i-1].Message,
			AIResponse:     turn.Message,
			Timestamp:      turn.CreatedAt,
			EvaluationNote: turn.EvaluationNote,
		})
	}
	return records
}

// ExtractContextForTurn selects the vectors evaluated against one turn: the
// vectors the generator marked as used, plus the best-scored remainder. When
// no usage info exists at all, the first vectors in export order stand in.
func (l *Loader) ExtractContextForTurn(response *models.ContextVectorsResponse) []models.VectorData {
	vectors := response.Data.VectorData
	sources := response.Data.Sources

	if len(sources.VectorsUsed) == 0 && len(sources.VectorsInfo) == 0 {
		if len(vectors) > maxFallbackVectors {
			return vectors[:maxFallbackVectors]
		}
		return vectors
	}

	byID := make(map[int]models.VectorData, len(vectors))
	for _, vector := range vectors {
		byID[vector.ID] = vector
	}

	used := make(map[int]bool, len(sources.VectorsUsed))
	var selected []models.VectorData
	for _, id := range sources.VectorsUsed {
		if vector, ok := byID[id]; ok && !used[id] {
			used[id] = true
			selected = append(selected, vector)
		}
	}

	rest := make([]models.VectorInfo, 0, len(sources.VectorsInfo))
	for _, info := range sources.VectorsInfo {
		if !used[info.VectorID] {
			rest = append(rest, info)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Score > rest[j].Score
	})

	for i, info := range rest {
		if i == maxExtraVectors {
			break
		}
		if vector, ok := byID[info.VectorID]; ok {
			selected = append(selected, vector)
		}
	}

	l.logger.Debug().
		Int("used", len(sources.VectorsUsed)).
		Int("selected", len(selected)).
		Msg("context vectors selected for turn")

	return selected
}
