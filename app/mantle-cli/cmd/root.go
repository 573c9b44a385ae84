package cmd

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mantle-cli",
	Short: "CLI for Amazon Bedrock OpenAI-compatible APIs (Mantle)",
	Long: `mantle-cli talks to the Bedrock Mantle APIs, which are compatible with
OpenAI's API format.

It provides access to:
  - Models API: list available models
  - Responses API: stateful conversations with background processing support
  - Chat Completions API: stateless chat completions

Both the Responses API and the Chat Completions API serve the same models;
the Responses API adds stateful conversation management and async background
processing.

Configuration is done via environment variables (or a .env file):
  OPENAI_API_KEY   Your Bedrock API key (required)
  OPENAI_BASE_URL  Mantle endpoint URL (required)`,
	PersistentPreRun: loadEnvFile,
	SilenceUsage:     true,
}

func Execute() error {
	return rootCmd.Execute()
}

func loadEnvFile(_ *cobra.Command, _ []string) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&config.TelemetryEnabled, "telemetry", false, "Enable OpenTelemetry tracing")
	rootCmd.PersistentFlags().StringVar(&config.OTLPEndpoint, "otlp-endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), "OTLP/HTTP collector endpoint for traces")
}
