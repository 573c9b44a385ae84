package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/packages/ssestream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDecoder feeds canned SSE events into the SDK's stream type
type fakeDecoder struct {
	events []ssestream.Event
	idx    int
	err    error
}

func (d *fakeDecoder) Next() bool {
	if d.idx < len(d.events) {
		d.idx++
		return true
	}
	return false
}

func (d *fakeDecoder) Event() ssestream.Event { return d.events[d.idx-1] }
func (d *fakeDecoder) Close() error           { return nil }
func (d *fakeDecoder) Err() error             { return d.err }

type fakeCompletionsClient struct {
	reply    string
	chunks   []string
	failNext bool
	calls    int
	params   []openai.ChatCompletionNewParams
}

func (f *fakeCompletionsClient) Complete(_ context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	f.calls++
	f.params = append(f.params, params)
	if f.failNext {
		f.failNext = false
		return nil, errors.New("simulated endpoint failure")
	}
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.reply}},
		},
	}, nil
}

func (f *fakeCompletionsClient) CompleteStream(_ context.Context, params openai.ChatCompletionNewParams) *ssestream.Stream[openai.ChatCompletionChunk] {
	f.calls++
	f.params = append(f.params, params)
	var events []ssestream.Event
	for _, chunk := range f.chunks {
		data, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"delta": map[string]any{"content": chunk}}},
		})
		events = append(events, ssestream.Event{Data: data})
	}
	return ssestream.NewStream[openai.ChatCompletionChunk](&fakeDecoder{events: events}, nil)
}

func completionsOptions() Options {
	return Options{
		Model:       "openai.gpt-oss-20b",
		System:      "You are a helpful assistant.",
		Completions: true,
	}
}

func runCompletionsScript(t *testing.T, client CompletionsClient, opts Options, script string) (*CompletionsLoop, string) {
	t.Helper()
	var out bytes.Buffer
	loop := NewCompletionsLoop(client, opts, strings.NewReader(script), &out)
	err := loop.Run(context.Background())
	require.NoError(t, err)
	return loop, out.String()
}

func TestCompletionsLoop_ClearResetsHistory(t *testing.T) {
	client := &fakeCompletionsClient{reply: "hi there"}

	loop, output := runCompletionsScript(t, client, completionsOptions(), "hello\n/clear\n/quit\n")

	require.Len(t, loop.messages, 1)
	assert.Contains(t, output, "Conversation cleared.")
	assert.Contains(t, output, "Goodbye!")
}

func TestCompletionsLoop_StatusIssuesNoRemoteCalls(t *testing.T) {
	client := &fakeCompletionsClient{reply: "unused"}

	_, output := runCompletionsScript(t, client, completionsOptions(), "/status\n/quit\n")

	assert.Equal(t, 0, client.calls)
	assert.Contains(t, output, "API: Chat Completions (stateless)")
	assert.Contains(t, output, "Messages in history: 1")
}

func TestCompletionsLoop_RollbackOnFailedTurn(t *testing.T) {
	client := &fakeCompletionsClient{reply: "recovered", failNext: true}

	loop, output := runCompletionsScript(t, client, completionsOptions(), "first\nsecond\n/quit\n")

	// The failed first turn must not leave its user message behind; the
	// second turn succeeds and adds a user/assistant pair
	require.Len(t, loop.messages, 3)
	assert.Contains(t, output, "Error: simulated endpoint failure")
	assert.Equal(t, 2, client.calls)
}

func TestCompletionsLoop_ExitCommands(t *testing.T) {
	for _, exit := range []string{"/quit", "/q", "/exit", "/e", "/QUIT", "/E"} {
		t.Run(exit, func(t *testing.T) {
			client := &fakeCompletionsClient{}

			_, output := runCompletionsScript(t, client, completionsOptions(), exit+"\n")

			assert.Equal(t, 0, client.calls)
			assert.Contains(t, output, "Goodbye!")
		})
	}
}

func TestCompletionsLoop_OrdinaryInputDoesNotTerminate(t *testing.T) {
	client := &fakeCompletionsClient{reply: "ok"}

	loop, _ := runCompletionsScript(t, client, completionsOptions(), "hello\nworld\n/q\n")

	assert.Equal(t, 2, client.calls)
	assert.Len(t, loop.messages, 5)
}

func TestCompletionsLoop_EmptyLinesAreIgnored(t *testing.T) {
	client := &fakeCompletionsClient{}

	_, _ = runCompletionsScript(t, client, completionsOptions(), "\n\n/quit\n")

	assert.Equal(t, 0, client.calls)
}

func TestCompletionsLoop_EndOfInputEndsLoop(t *testing.T) {
	client := &fakeCompletionsClient{reply: "ok"}

	loop, _ := runCompletionsScript(t, client, completionsOptions(), "hello\n")

	assert.Equal(t, 1, client.calls)
	assert.Len(t, loop.messages, 3)
}

func TestCompletionsLoop_StreamingAccumulatesReply(t *testing.T) {
	opts := completionsOptions()
	opts.Stream = true
	client := &fakeCompletionsClient{chunks: []string{"Hel", "lo", " world"}}

	loop, output := runCompletionsScript(t, client, opts, "hi\n/quit\n")

	require.Len(t, loop.messages, 3)
	assistant := loop.messages[2].OfAssistant
	require.NotNil(t, assistant)
	assert.Equal(t, "Hello world", assistant.Content.OfString.Value)
	assert.Contains(t, output, "Hello world")
}

func TestCompletionsLoop_HistoryIsResentEachTurn(t *testing.T) {
	client := &fakeCompletionsClient{reply: "ok"}

	_, _ = runCompletionsScript(t, client, completionsOptions(), "one\ntwo\n/quit\n")

	require.Len(t, client.params, 2)
	// system + user, then system + user + assistant + user
	assert.Len(t, client.params[0].Messages, 2)
	assert.Len(t, client.params[1].Messages, 4)
}
