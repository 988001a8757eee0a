package api

import (
	"errors"
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/raglabs/chat-eval/internal/api/middleware"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/raglabs/chat-eval/internal/pipeline"
	"github.com/rs/zerolog"
)

// EvaluateRequest carries one turn plus its ground-truth context inline, so
// the API can evaluate without access to export files.
type EvaluateRequest struct {
	TurnID         int                 `json:"turn_id"`
	UserQuery      string              `json:"user_query"`
	AIResponse     string              `json:"ai_response"`
	EvaluationNote string              `json:"evaluation_note,omitempty"`
	ContextVectors []models.VectorData `json:"context_vectors"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	evaluator pipeline.TurnEvaluator
	logger    *zerolog.Logger
}

func NewHandler(evaluator pipeline.TurnEvaluator, logger *zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		logger:    logger,
	}
}

// POST /api/v1/evaluate
// Body: EvaluateRequest
// Returns: EvaluationResult
func (h *Handler) Evaluate(req *restful.Request, resp *restful.Response) {
	var evalRequest EvaluateRequest
	if err := req.ReadEntity(&evalRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	if evalRequest.UserQuery == "" || evalRequest.AIResponse == "" {
		middleware.HandleError(resp, errors.New("user_query and ai_response are required"), http.StatusBadRequest)
		return
	}

	h.logger.Info().
		Int("turn_id", evalRequest.TurnID).
		Int("context_vectors", len(evalRequest.ContextVectors)).
		Msg("Start evaluation")

	ctx := req.Request.Context()
	turn := models.TurnRecord{
		TurnID:         evalRequest.TurnID,
		UserQuery:      evalRequest.UserQuery,
		AIResponse:     evalRequest.AIResponse,
		EvaluationNote: evalRequest.EvaluationNote,
	}

	result, err := h.evaluator.EvaluateTurn(ctx, turn, evalRequest.ContextVectors)
	if err != nil {
		h.logger.Error().Err(err).Int("turn_id", evalRequest.TurnID).Msg("Evaluation failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Int("turn_id", result.TurnID).
		Float64("overall_score", result.OverallScore).
		Msg("Evaluation complete")

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}
