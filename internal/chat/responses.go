package chat

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultPollInterval is how long the background-mode loop sleeps between
// retrievals of a pending job
const defaultPollInterval = time.Second

// pollProgressEvery controls how often the background-mode loop emits a
// progress marker, counted in polls
const pollProgressEvery = 5

// ResponsesLoop is the interactive loop for the stateful Responses API.
// Instead of a message history it holds a single previous-response
// identifier; the endpoint reconstructs conversation context from it.
type ResponsesLoop struct {
	client             ResponsesClient
	session            *session
	previousResponseID string
	pollInterval       time.Duration
}

func NewResponsesLoop(client ResponsesClient, opts Options, in io.Reader, out io.Writer) *ResponsesLoop {
	return &ResponsesLoop{
		client:       client,
		session:      newSession(opts, in, out),
		pollInterval: defaultPollInterval,
	}
}

func (l *ResponsesLoop) Run(ctx context.Context) error {
	return runInteractive(ctx, l.session.out, func() error {
		l.run(ctx)
		return nil
	})
}

func (l *ResponsesLoop) run(ctx context.Context) {
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
			l.previousResponseID = ""
			fmt.Fprint(out, "Conversation cleared (stateful context reset).\n\n")
		case CommandStatus:
			fmt.Fprintln(out, "API: Responses (stateful)")
			fmt.Fprintf(out, "Model: %s\n", l.session.opts.Model)
			fmt.Fprintf(out, "Background: %s\n", enabledOrDisabled(l.session.opts.Background))
			fmt.Fprintf(out, "Previous response ID: %s\n", orNone(l.previousResponseID))
			fmt.Fprintf(out, "Session: %s\n", l.session.id)
			fmt.Fprintln(out)
		case CommandMessage:
			l.turn(ctx, text)
		}
	}
}

// turn exchanges one user message for one assistant reply using whichever of
// the four request shapes (background x streaming) the session is configured
// for. The previous-response identifier is only advanced on success, so a
// failed turn leaves conversation context exactly as it was.
func (l *ResponsesLoop) turn(ctx context.Context, text string) {
	out := l.session.out

	ctx, span := tracer.Start(ctx, "chat.turn", trace.WithAttributes(
		attribute.String("session.id", l.session.id),
		attribute.String("chat.model", l.session.opts.Model),
		attribute.String("chat.api", "responses"),
		attribute.Bool("chat.streaming", l.session.opts.Stream),
		attribute.Bool("chat.background", l.session.opts.Background),
	))
	defer span.End()

	fmt.Fprintln(out)
	fmt.Fprint(out, "Assistant: ")

	params := l.buildParams(text)

	var newID string
	var err error
	switch {
	case l.session.opts.Background && l.session.opts.Stream:
		// Background + streaming: events arrive over the same streamed
		// channel as the job makes progress
		newID, err = l.streamingExchange(ctx, params)
	case l.session.opts.Background:
		newID, err = l.pollingExchange(ctx, params)
	case l.session.opts.Stream:
		newID, err = l.streamingExchange(ctx, params)
	default:
		newID, err = l.blockingExchange(ctx, params)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat exchange failed")
		fmt.Fprintf(out, "\nError: %v\n", err)
	} else if newID != "" {
		l.previousResponseID = newID
	}

	fmt.Fprintln(out)
}

// buildParams constructs the input batch for one turn. The system message is
// only sent when no previous response is held, i.e. on the first turn of a
// conversation; afterwards the endpoint already has it as part of the stored
// context.
func (l *ResponsesLoop) buildParams(userInput string) responses.ResponseNewParams {
	var items responses.ResponseInputParam
	if l.previousResponseID == "" {
		items = append(items, inputMessage(responses.EasyInputMessageRoleSystem, l.session.opts.System))
	}
	items = append(items, inputMessage(responses.EasyInputMessageRoleUser, userInput))

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(l.session.opts.Model),
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: items},
	}
	if l.previousResponseID != "" {
		params.PreviousResponseID = openai.String(l.previousResponseID)
	}
	if l.session.opts.Background {
		params.Background = openai.Bool(true)
	}
	return params
}

func (l *ResponsesLoop) blockingExchange(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := l.client.Respond(ctx, params)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(l.session.out, ExtractResponseText(resp))
	return resp.ID, nil
}

func (l *ResponsesLoop) streamingExchange(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	stream := l.client.RespondStream(ctx, params)
	defer stream.Close()
	_, responseID, err := processResponseStream(stream, l.session.out)
	return responseID, err
}

// pollingExchange issues a background request, then retrieves the job by
// identifier at a fixed interval until it reaches a terminal status. The
// identifier is only adopted as conversation context when the job completed.
func (l *ResponsesLoop) pollingExchange(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	out := l.session.out

	resp, err := l.client.Respond(ctx, params)
	if err != nil {
		return "", err
	}
	responseID := resp.ID

	fmt.Fprint(out, "[Background processing started...]")
	polls := 0

	for resp.Status == responses.ResponseStatusQueued || resp.Status == responses.ResponseStatusInProgress {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.pollInterval):
		}
		polls++
		if polls%pollProgressEvery == 0 {
			fmt.Fprint(out, ".")
		}
		resp, err = l.client.GetResponse(ctx, responseID)
		if err != nil {
			return "", err
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, "Assistant: ")

	switch resp.Status {
	case responses.ResponseStatusCompleted:
		fmt.Fprintln(out, ExtractResponseText(resp))
		return responseID, nil
	case responses.ResponseStatusFailed:
		fmt.Fprintf(out, "[Background task failed: %s]\n", resp.Status)
	case responses.ResponseStatusCancelled:
		fmt.Fprintln(out, "[Background task was cancelled]")
	default:
		fmt.Fprintf(out, "[Unexpected status: %s]\n", resp.Status)
	}
	return "", nil
}

func inputMessage(role responses.EasyInputMessageRole, text string) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemUnionParam{
		OfMessage: &responses.EasyInputMessageParam{
			Role:    role,
			Content: responses.EasyInputMessageContentUnionParam{OfString: openai.String(text)},
		},
	}
}

func enabledOrDisabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}

func orNone(s string) string {
	if s == "" {
		return "None (new conversation)"
	}
	return s
}
