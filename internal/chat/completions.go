package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CompletionsLoop is the interactive loop for the stateless Chat Completions
// API. The API holds no conversation state, so the loop carries the full
// role-tagged message history and resends it on every turn.
type CompletionsLoop struct {
	client   CompletionsClient
	session  *session
	messages []openai.ChatCompletionMessageParamUnion
}

func NewCompletionsLoop(client CompletionsClient, opts Options, in io.Reader, out io.Writer) *CompletionsLoop {
	return &CompletionsLoop{
		client:   client,
		session:  newSession(opts, in, out),
		messages: []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(opts.System)},
	}
}

func (l *CompletionsLoop) Run(ctx context.Context) error {
	return runInteractive(ctx, l.session.out, func() error {
		l.run(ctx)
		return nil
	})
}

func (l *CompletionsLoop) run(ctx context.Context) {
	out := l.session.out
	for {
		line, ok := l.session.readLine()
		if !ok {
			return
		}

		cmd, text := ParseCommand(line)
		switch cmd {
		case CommandEmpty:
			continue
		case CommandQuit:
			fmt.Fprintln(out, "Goodbye!")
			return
		case CommandClear:
			l.messages = []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(l.session.opts.System)}
			fmt.Fprint(out, "Conversation cleared.\n\n")
		case CommandStatus:
			fmt.Fprintln(out, "API: Chat Completions (stateless)")
			fmt.Fprintf(out, "Model: %s\n", l.session.opts.Model)
			fmt.Fprintf(out, "Messages in history: %d\n", len(l.messages))
			fmt.Fprintf(out, "Session: %s\n", l.session.id)
			fmt.Fprintln(out)
		case CommandMessage:
			l.turn(ctx, text)
		}
	}
}

// turn exchanges one user message for one assistant reply. A failed exchange
// rolls the user message back out of the history so that the local record
// only ever contains turns the endpoint actually saw.
func (l *CompletionsLoop) turn(ctx context.Context, text string) {
	out := l.session.out

	ctx, span := tracer.Start(ctx, "chat.turn", trace.WithAttributes(
		attribute.String("session.id", l.session.id),
		attribute.String("chat.model", l.session.opts.Model),
		attribute.String("chat.api", "chat_completions"),
		attribute.Bool("chat.streaming", l.session.opts.Stream),
	))
	defer span.End()

	l.messages = append(l.messages, openai.UserMessage(text))

	fmt.Fprintln(out)
	fmt.Fprint(out, "Assistant: ")

	var reply string
	var err error
	if l.session.opts.Stream {
		reply, err = l.streamingExchange(ctx)
	} else {
		reply, err = l.blockingExchange(ctx)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat exchange failed")
		fmt.Fprintf(out, "\nError: %v\n", err)
		l.messages = l.messages[:len(l.messages)-1]
	} else {
		l.messages = append(l.messages, openai.AssistantMessage(reply))
	}

	fmt.Fprintln(out)
}

func (l *CompletionsLoop) blockingExchange(ctx context.Context) (string, error) {
	resp, err := l.client.Complete(ctx, l.params())
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	reply := resp.Choices[0].Message.Content
	fmt.Fprintln(l.session.out, reply)
	return reply, nil
}

func (l *CompletionsLoop) streamingExchange(ctx context.Context) (string, error) {
	stream := l.client.CompleteStream(ctx, l.params())
	defer stream.Close()
	return collectCompletionStream(stream, l.session.out)
}

func (l *CompletionsLoop) params() openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(l.session.opts.Model),
		Messages: l.messages,
	}
}
