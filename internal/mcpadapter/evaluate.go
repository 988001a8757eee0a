// Package mcpadapter exposes the turn evaluator as MCP tools.
package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/raglabs/chat-eval/internal/models"
	"github.com/raglabs/chat-eval/internal/pipeline"
)

// EvaluateInput is the MCP tool input schema (matches HTTP API field names).
type EvaluateInput struct {
	TurnID     int                 `json:"turn_id" jsonschema:"conversation turn number"`
	UserQuery  string              `json:"user_query" jsonschema:"user's question"`
	AIResponse string              `json:"ai_response" jsonschema:"AI response to evaluate"`
	Contexts   []models.VectorData `json:"context_vectors" jsonschema:"ground-truth context passages"`
}

// NewEvaluateHandler returns a tool handler bound to the given evaluator.
// Pass the returned function to mcp.AddTool.
func NewEvaluateHandler(evaluator pipeline.TurnEvaluator) func(context.Context, *mcp.CallToolRequest, EvaluateInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, models.EvaluationResult, error) {
		return EvaluateTurn(ctx, evaluator, req, input)
	}
}

// EvaluateTurn runs all enabled metrics on one turn and returns the result.
func EvaluateTurn(
	ctx context.Context,
	evaluator pipeline.TurnEvaluator,
	req *mcp.CallToolRequest,
	input EvaluateInput,
) (*mcp.CallToolResult, models.EvaluationResult, error) {
	turn := models.TurnRecord{
		TurnID:     input.TurnID,
		UserQuery:  input.UserQuery,
		AIResponse: input.AIResponse,
	}

	result, err := evaluator.EvaluateTurn(ctx, turn, input.Contexts)
	return nil, result, err
}
