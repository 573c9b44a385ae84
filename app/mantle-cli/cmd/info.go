package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const infoText = `
Amazon Bedrock Mantle - OpenAI-Compatible APIs
==============================================

CONFIGURATION
-------------
Set these environment variables (or use a .env file):

  OPENAI_BASE_URL  Mantle endpoint (required)
                   Example: https://bedrock-mantle.us-east-1.api.aws/v1

  OPENAI_API_KEY   Your Bedrock API key (required)
                   Generate at: https://docs.aws.amazon.com/bedrock/latest/userguide/api-keys.html

Supported Regions:
  us-east-1, us-east-2, us-west-2, ap-southeast-3, ap-south-1,
  ap-northeast-1, eu-central-1, eu-west-1, eu-west-2, eu-south-1,
  eu-north-1, sa-east-1

API COMPARISON
--------------
┌─────────────────────────┬─────────────────────┬────────────────────────┐
│ Feature                 │ Responses API       │ Chat Completions API   │
├─────────────────────────┼─────────────────────┼────────────────────────┤
│ State Management        │ Stateful            │ Stateless              │
│ Conversation Context    │ Automatic (ID)      │ Manual (history)       │
│ Background Processing   │ ✓ Supported         │ ✗ Not supported        │
│ Response Storage        │ ~30 days            │ Temporary              │
│ Streaming               │ ✓ Supported         │ ✓ Supported            │
│ Tool/Function Calling   │ ✓ Supported         │ ✓ Supported            │
│ Cancel Request          │ ✓ Supported         │ ✗ Not supported        │
└─────────────────────────┴─────────────────────┴────────────────────────┘

MODEL AVAILABILITY
------------------
Both APIs access the same set of models through the Mantle endpoint.
Use 'list-models' to see available models.

Known models include:
  - openai.gpt-oss-20b: Smaller model, optimized for lower latency
  - openai.gpt-oss-120b: Larger model, optimized for production use

BACKGROUND PROCESSING
---------------------
The Responses API supports async background processing for long-running tasks:
  1. Set background=true in your request (use --background flag)
  2. Receive immediate response with ID and status="queued"
  3. Poll for completion using the response ID
  4. Retrieve results when status="completed"

This is useful for:
  - Complex reasoning tasks that may take minutes
  - Avoiding connection timeouts
  - Building reliable async workflows

LIMITATIONS
-----------
- Chat Completions API does not support background processing
- Background mode has higher time-to-first-token latency

ZERO DATA RETENTION (ZDR)
-------------------------
ZDR is a policy where API inputs/outputs are not stored beyond immediate processing.
By default, the API retains data for 30 days for safety monitoring.

The Responses API is NOT ZDR-compatible because it stores data for:
  - Background processing (~10 minutes for polling)
  - Stateful conversations (~30 days for previous_response_id)

The Chat Completions API is stateless and can be ZDR-compatible.

See: https://platform.openai.com/docs/guides/your-data
`

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show information about API differences and limitations",
	Long: `Displays a comparison between the Responses API and Chat Completions API,
including model availability and feature support. Requires no credentials
and makes no network calls.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), infoText)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
