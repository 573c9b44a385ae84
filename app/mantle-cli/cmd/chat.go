package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cchalm/mantle-cli/internal/chat"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive chat session. By default, uses the Responses API with
streaming enabled.

API comparison:
  - Responses API (default): stateful, supports background processing,
    maintains conversation context automatically via previous_response_id
  - Chat Completions API (--completions): stateless, simpler interface,
    requires manual conversation history management

Commands during chat:
  /quit or /q  - Exit the chat
  /exit or /e  - Exit the chat
  /clear       - Clear conversation history
  /status      - Show current API mode and settings`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&config.Model, "model", "m", "", "Model ID or inference profile to use")
	chatCmd.Flags().BoolVar(&config.NoStream, "no-stream", false, "Disable streaming (streaming is enabled by default)")
	chatCmd.Flags().BoolVar(&config.UseCompletions, "completions", false, "Use Chat Completions API instead of Responses API")
	chatCmd.Flags().BoolVar(&config.Background, "background", false, "Enable background processing (Responses API only)")
	chatCmd.Flags().StringVarP(&config.System, "system", "s", "You are a helpful assistant.", "System prompt for the conversation")
	_ = chatCmd.MarkFlagRequired("model")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	opts := chat.Options{
		Model:       config.Model,
		System:      config.System,
		Stream:      !config.NoStream,
		Background:  config.Background,
		Completions: config.UseCompletions,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx := setupContext()

	telemetryProvider, err := createTelemetryProvider(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = telemetryProvider.Shutdown(context.Background())
	}()

	client, _, err := createClient()
	if err != nil {
		return err
	}

	printSessionBanner(opts)

	if opts.Completions {
		loop := chat.NewCompletionsLoop(client, opts, os.Stdin, os.Stdout)
		return loop.Run(ctx)
	}
	loop := chat.NewResponsesLoop(client, opts, os.Stdin, os.Stdout)
	return loop.Run(ctx)
}

func printSessionBanner(opts chat.Options) {
	apiMode := "Responses"
	if opts.Completions {
		apiMode = "Chat Completions"
	}

	if opts.Background && opts.Stream {
		fmt.Println("Note: Background mode with streaming - events will stream as processing completes.")
		fmt.Println()
	}

	fmt.Println("Starting chat session")
	fmt.Printf("  Model: %s\n", opts.Model)
	fmt.Printf("  API: %s API\n", apiMode)
	if opts.Stream {
		fmt.Println("  Streaming: enabled")
	} else {
		fmt.Println("  Streaming: disabled")
	}
	if !opts.Completions {
		if opts.Background {
			fmt.Println("  Background: enabled")
		} else {
			fmt.Println("  Background: disabled")
		}
	}
	fmt.Println()
	fmt.Println("Type /quit or /q to exit, /clear to reset conversation")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println()
}
