package chat

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/packages/ssestream"
	"github.com/openai/openai-go/v2/responses"
)

// CompletionsClient is the slice of the endpoint client the stateless chat
// loop needs
type CompletionsClient interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	CompleteStream(ctx context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk]
}

// ResponsesClient is the slice of the endpoint client the stateful chat loop
// needs. GetResponse is only exercised when polling background jobs.
type ResponsesClient interface {
	Respond(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error)
	RespondStream(ctx context.Context, params responses.ResponseNewParams) *ssestream.Stream[responses.ResponseStreamEventUnion]
	GetResponse(ctx context.Context, responseID string) (*responses.Response, error)
}
