package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/responses"
)

// responseEventStream is the part of the SDK's typed event stream the decode
// loop needs; *ssestream.Stream satisfies it
type responseEventStream interface {
	Next() bool
	Current() responses.ResponseStreamEventUnion
	Err() error
}

// completionChunkStream is the chat-completions counterpart
type completionChunkStream interface {
	Next() bool
	Current() openai.ChatCompletionChunk
	Err() error
}

// processResponseStream consumes a Responses API event stream, echoing text
// deltas to out as they arrive. It decodes each event once by switching on
// the union's discriminator; the default case covers endpoint variants that
// emit untyped deltas or identifiers. Returns the accumulated text and the
// response identifier captured from the stream, if any.
func processResponseStream(stream responseEventStream, out io.Writer) (string, string, error) {
	var text strings.Builder
	var responseID string

	for stream.Next() {
		event := stream.Current()
		switch event.Type {
		case "response.output_text.delta":
			fmt.Fprint(out, event.Delta)
			text.WriteString(event.Delta)
		case "response.completed":
			responseID = event.Response.ID
		case "response.queued":
			fmt.Fprint(out, "[Queued...]")
		case "response.in_progress":
			fmt.Fprint(out, "[Processing...]")
		default:
			if event.Delta != "" {
				fmt.Fprint(out, event.Delta)
				text.WriteString(event.Delta)
			} else if event.Response.ID != "" {
				responseID = event.Response.ID
			}
		}
	}

	fmt.Fprintln(out)
	if err := stream.Err(); err != nil {
		return "", "", err
	}
	return text.String(), responseID, nil
}

// collectCompletionStream consumes a streamed chat completion, echoing
// content deltas to out, and returns the accumulated assistant reply
func collectCompletionStream(stream completionChunkStream, out io.Writer) (string, error) {
	var text strings.Builder

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta != "" {
			fmt.Fprint(out, delta)
			text.WriteString(delta)
		}
	}

	fmt.Fprintln(out)
	if err := stream.Err(); err != nil {
		return "", err
	}
	return text.String(), nil
}
