package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/raglabs/chat-eval/internal/config"
	red "github.com/raglabs/chat-eval/internal/redis"
	"github.com/raglabs/chat-eval/internal/setup"
	streamredis "github.com/raglabs/chat-eval/internal/stream/redis"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env := setup.LoadEnv()
	cfg, err := config.Load(env.ConfigPath, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Wire dependencies
	deps, err := setup.Wire(ctx, env, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Unable to load dependencies")
	}

	redisClient, err := red.ConnectRedis(ctx, env.RedisAddr, env.RedisPassword, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	streamCfg := streamredis.NewStreamConfig(
		env.RedisAddr,
		env.RedisPassword,
		"turn-events",         // stream name
		"chat-eval-group",     // consumer group
		os.Getenv("HOSTNAME"), // unique consumer name
	)

	consumer := streamredis.NewConsumer(redisClient, streamCfg, deps.Orchestrator, &logger)

	// Setup consumer
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to setup consumer")
	}

	// Start consumer
	go func() {
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Consumer stopped with error")
		}
	}()

	// Wait for context to be done
	<-ctx.Done()
	logger.Info().Msg("Shutting down...")

	log.Info().Msg("Chat Eval consumer stopped")
}
