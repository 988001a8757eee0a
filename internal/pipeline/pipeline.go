// Package pipeline drives an evaluation session: load the exports, pair the
// turns, evaluate each one, collect the results.
package pipeline

import (
	"context"
	"fmt"

	"github.com/raglabs/chat-eval/internal/loader"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/rs/zerolog"
)

// State tracks where a session is in its lifecycle.
type State string

const (
	StateLoaded     State = "loaded"
	StateEvaluating State = "evaluating"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// TurnEvaluator is the orchestrator capability the pipeline consumes.
type TurnEvaluator interface {
	EvaluateTurn(ctx context.Context, turn models.TurnRecord, vectors []models.VectorData) (models.EvaluationResult, error)
}

// Session is a single evaluation run over one conversation. It is not safe
// for concurrent use.
type Session struct {
	loader    *loader.Loader
	evaluator TurnEvaluator
	logger    *zerolog.Logger

	state   State
	results []models.EvaluationResult
}

func NewSession(l *loader.Loader, evaluator TurnEvaluator, logger *zerolog.Logger) *Session {
	return &Session{
		loader:    l,
		evaluator: evaluator,
		logger:    logger,
		state:     StateLoaded,
	}
}

func (s *Session) State() State {
	return s.state
}

// Results returns whatever has been evaluated so far; on a failed run this
// holds the turns completed before the error.
func (s *Session) Results() []models.EvaluationResult {
	return s.results
}

// EvaluateConversation loads both exports and evaluates either one target
// turn (targetTurn > 0) or every AI turn in order. The first evaluation
// error aborts the run.
func (s *Session) EvaluateConversation(ctx context.Context, conversationPath, vectorsPath string, targetTurn int) ([]models.EvaluationResult, error) {
	conversation, err := s.loader.LoadConversation(conversationPath)
	if err != nil {
		s.state = StateFailed
		return nil, err
	}

	vectorsResponse, err := s.loader.LoadContextVectors(vectorsPath)
	if err != nil {
		s.state = StateFailed
		return nil, err
	}
	vectors := s.loader.ExtractContextForTurn(vectorsResponse)

	records := s.loader.AIResponsesWithContext(conversation)
	if targetTurn > 0 {
		records = filterTurn(records, targetTurn)
		if len(records) == 0 {
			s.state = StateFailed
			return nil, fmt.Errorf("turn %d not found or is not an AI response", targetTurn)
		}
	}
	if len(records) == 0 {
		s.state = StateCompleted
		s.logger.Warn().Str("conversation", conversationPath).Msg("no AI turns to evaluate")
		return nil, nil
	}

	s.state = StateEvaluating
	s.results = make([]models.EvaluationResult, 0, len(records))

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			s.state = StateFailed
			return s.results, err
		}

		s.logger.Info().Int("turn_id", record.TurnID).Msg("evaluating turn")
		result, err := s.evaluator.EvaluateTurn(ctx, record, vectors)
		if err != nil {
			s.state = StateFailed
			return s.results, fmt.Errorf("evaluation aborted: %w", err)
		}
		s.results = append(s.results, result)
	}

	s.state = StateCompleted
	s.logger.Info().Int("turns", len(s.results)).Msg("evaluation session complete")
	return s.results, nil
}

func filterTurn(records []models.TurnRecord, targetTurn int) []models.TurnRecord {
	for _, record := range records {
		if record.TurnID == targetTurn {
			return []models.TurnRecord{record}
		}
	}
	return nil
}
