package bedrock

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type Client struct {
	Client  *bedrockruntime.Client
	ModelID string
}

// NewClient builds a Bedrock judge transport. Credentials come from the
// default AWS chain; region falls back to AWS_REGION when empty.
func NewClient(ctx context.Context, region string, modelID string) (*Client, error) {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if modelID == "" {
		return nil, fmt.Errorf("bedrock model ID is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}

	return &Client{
		Client:  bedrockruntime.NewFromConfig(cfg),
		ModelID: modelID,
	}, nil
}
