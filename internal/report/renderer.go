package report

import (
	"io"

	"github.com/raglabs/chat-eval/internal/models"
)

// Renderer writes a result set to an output stream.
type Renderer interface {
	Render(w io.Writer, results []models.EvaluationResult) error
}
