package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/spf13/cobra"
)

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List available models",
	Long: `Lists the models available at the configured Mantle endpoint.

The same set of models is served by both the Responses API and the
Chat Completions API.`,
	RunE: runListModels,
}

func init() {
	rootCmd.AddCommand(listModelsCmd)
}

func runListModels(cmd *cobra.Command, args []string) error {
	client, cfg, err := createClient()
	if err != nil {
		return err
	}

	ctx := setupContext()

	fmt.Fprintf(cmd.OutOrStdout(), "Endpoint: %s\n\n", cfg.BaseURL)

	models, err := client.ListModels(ctx)
	if err != nil {
		return err
	}

	printModels(cmd.OutOrStdout(), models)
	return nil
}

func printModels(out io.Writer, models []openai.Model) {
	fmt.Fprintln(out, "Available Models:")
	fmt.Fprintln(out, strings.Repeat("-", 60))

	for _, model := range models {
		fmt.Fprintf(out, "  ID: %s\n", model.ID)
		fmt.Fprintf(out, "      Created: %d\n", model.Created)
		fmt.Fprintf(out, "      Owner: %s\n", model.OwnedBy)
		fmt.Fprintln(out)
	}
}
