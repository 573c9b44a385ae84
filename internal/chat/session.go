// Package chat implements the interactive chat loops for the Responses API
// and the Chat Completions API.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/cchalm/mantle-cli/internal/chat")

// Options configures a chat session
type Options struct {
	Model       string
	System      string
	Stream      bool
	Background  bool
	Completions bool
}

// Validate reports configuration errors that should abort the command
// before any network call is made
func (o Options) Validate() error {
	if o.Model == "" {
		return errors.New("model is required")
	}
	if o.Background && o.Completions {
		return errors.New("Background processing is only available with the Responses API.\n" +
			"Remove --completions to use background mode.")
	}
	return nil
}

// Command is an in-session command typed at the prompt
type Command int

const (
	// CommandMessage is the default: the line is an ordinary user message
	CommandMessage Command = iota
	CommandEmpty
	CommandQuit
	CommandClear
	CommandStatus
)

// ParseCommand classifies a raw input line. Commands are matched
// case-insensitively; anything unrecognized is an ordinary message.
// The second return value is the trimmed line.
func ParseCommand(line string) (Command, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return CommandEmpty, ""
	}
	switch strings.ToLower(trimmed) {
	case "/quit", "/q", "/exit", "/e":
		return CommandQuit, trimmed
	case "/clear":
		return CommandClear, trimmed
	case "/status":
		return CommandStatus, trimmed
	}
	return CommandMessage, trimmed
}

// session holds the state shared by both loop flavors: the terminal streams
// and a process-lifetime identity used in /status output and trace spans
type session struct {
	id   string
	opts Options
	in   *bufio.Scanner
	out  io.Writer
}

func newSession(opts Options, in io.Reader, out io.Writer) *session {
	return &session{
		id:   uuid.NewString(),
		opts: opts,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

// readLine prompts and reads one line. The second return value is false at
// end of input.
func (s *session) readLine() (string, bool) {
	fmt.Fprint(s.out, "You: ")
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// runInteractive runs loop until it returns or ctx is cancelled. The loop
// blocks on terminal reads, so interrupt handling has to race it: on
// cancellation the session ends immediately with a farewell and the blocked
// read is abandoned to process teardown.
func runInteractive(ctx context.Context, out io.Writer, loop func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- loop()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		fmt.Fprintln(out, "\n\nChat session ended.")
		return nil
	}
}
