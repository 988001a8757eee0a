// Package spandetect talks to a transformer-based hallucination detector
// served as a JSON-over-HTTP inference endpoint (a lettucedetect-style
// service). It returns character spans of the answer the model considers
// unsupported by the context, each with a confidence.
package spandetect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Span is one predicted hallucinated range over the answer text.
type Span struct {
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
	Text       string  `json:"text"`
}

// Detector is the span-prediction capability consumed by the hallucination
// strategy.
type Detector interface {
	Predict(ctx context.Context, contexts []string, question, answer string) ([]Span, error)
}

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zerolog.Logger
}

// NewClient builds a span-detector client. The endpoint must be configured;
// failing here keeps the missing dependency visible at wiring time instead
// of surfacing mid-batch.
func NewClient(baseURL, model string, logger *zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf(
			"span detector endpoint not configured: set SPANDETECT_URL to a running lettucedetect inference service, or switch metrics.hallucination.method to llm_judge")
	}

	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

type predictRequest struct {
	Contexts []string `json:"contexts"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Model    string   `json:"model,omitempty"`
	Format   string   `json:"output_format"`
}

type predictResponse struct {
	Predictions []Span `json:"predictions"`
}

func (c *Client) Predict(ctx context.Context, contexts []string, question, answer string) ([]Span, error) {
	body, err := json.Marshal(predictRequest{
		Contexts: contexts,
		Question: question,
		Answer:   answer,
		Model:    c.model,
		Format:   "spans",
	})
	if err != nil {
		return nil, fmt.Errorf("serialize predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("span detector call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("span detector returned %d: %s", resp.StatusCode, excerpt)
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode span detector response: %w", err)
	}

	c.logger.Debug().Int("spans", len(parsed.Predictions)).Msg("span prediction complete")
	return parsed.Predictions, nil
}
