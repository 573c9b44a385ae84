// Package mantle wraps the openai-go SDK for use against an
// OpenAI-compatible endpoint such as Amazon Bedrock's Mantle layer.
package mantle

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/ssestream"
	"github.com/openai/openai-go/v2/responses"

	"github.com/cchalm/mantle-cli/internal/transport"
)

// Config holds the endpoint configuration resolved from the environment
type Config struct {
	APIKey  string
	BaseURL string
}

// LoadConfig resolves the endpoint configuration from the environment.
// Both values are required; a missing value is a terminal configuration
// error, not something to retry.
func LoadConfig() (Config, error) {
	cfg := Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required. Set it in .env file or as environment variable.\n" +
			"See: https://docs.aws.amazon.com/bedrock/latest/userguide/api-keys.html")
	}
	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("OPENAI_BASE_URL is required. Set it in .env file or as environment variable.\n" +
			"Example: https://bedrock-mantle.us-east-1.api.aws/v1")
	}

	return cfg, nil
}

// Client is a thin wrapper around the SDK client. Everything below the
// method surface (auth headers, serialization, SSE decoding) belongs to
// the SDK; this type exists so that the chat loops can depend on a small,
// fakeable interface instead of the full SDK client.
type Client struct {
	api openai.Client
}

// NewClient constructs a client for the configured endpoint
func NewClient(cfg Config) *Client {
	rateLimitedHTTPClient := &http.Client{
		Transport: transport.WithRateLimiting(nil),
	}
	api := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(rateLimitedHTTPClient),
	)
	return &Client{api: api}
}

// ListModels fetches the model records available at the endpoint
func (c *Client) ListModels(ctx context.Context) ([]openai.Model, error) {
	page, err := c.api.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return page.Data, nil
}

// Complete issues a blocking chat completion call
func (c *Client) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.api.Chat.Completions.New(ctx, params)
}

// CompleteStream issues a streaming chat completion call
func (c *Client) CompleteStream(ctx context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk] {
	return c.api.Chat.Completions.NewStreaming(ctx, params)
}

// Respond issues a blocking call to the responses API
func (c *Client) Respond(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	return c.api.Responses.New(ctx, params)
}

// RespondStream issues a streaming call to the responses API
func (c *Client) RespondStream(ctx context.Context, params responses.ResponseNewParams) *ssestream.Stream[responses.ResponseStreamEventUnion] {
	return c.api.Responses.NewStreaming(ctx, params)
}

// GetResponse retrieves a response by identifier, used to poll background jobs
func (c *Client) GetResponse(ctx context.Context, responseID string) (*responses.Response, error) {
	return c.api.Responses.Get(ctx, responseID, responses.ResponseGetParams{})
}
