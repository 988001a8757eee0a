// Package redis consumes turn-evaluation events from a Redis stream.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/raglabs/chat-eval/internal/models"
	"github.com/raglabs/chat-eval/internal/pipeline"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TurnEvent is the stream payload: one turn plus its context vectors.
type TurnEvent struct {
	TurnID         int                 `json:"turn_id"`
	UserQuery      string              `json:"user_query"`
	AIResponse     string              `json:"ai_response"`
	EvaluationNote string              `json:"evaluation_note,omitempty"`
	ContextVectors []models.VectorData `json:"context_vectors"`
}

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	evaluator    pipeline.TurnEvaluator
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *StreamConfig, evaluator pipeline.TurnEvaluator, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       cfg.Stream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		evaluator:    evaluator,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	// No-op
	return nil
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var event TurnEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // skip undecodable messages instead of re-reading them
		return
	}

	turn := models.TurnRecord{
		TurnID:         event.TurnID,
		UserQuery:      event.UserQuery,
		AIResponse:     event.AIResponse,
		EvaluationNote: event.EvaluationNote,
	}

	result, err := c.evaluator.EvaluateTurn(ctx, turn, event.ContextVectors)
	if err != nil {
		// Leave the message pending so it can be retried or claimed.
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Evaluation failed, message left pending")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Int("turn_id", result.TurnID).
		Float64("overall_score", result.OverallScore).
		Msg("Evaluation complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
