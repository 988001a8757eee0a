package llm

import (
	"context"
)

// Client is the judge transport: it sends one prompt and returns the raw
// model text. Real providers and the heuristic mock both implement it, so
// strategies never know which backend is answering.
type Client interface {
	InvokeModel(ctx context.Context, request Request) (*Response, error)
}
