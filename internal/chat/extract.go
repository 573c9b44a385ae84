package chat

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2/responses"
)

// ExtractResponseText pulls the assistant text out of a blocking Responses
// API payload. Three tiers: the SDK's aggregated output-text helper, then a
// manual concatenation of every text fragment in the structured output, then
// a raw formatting of the output slice. The last tier produces a
// debug-looking string; that is intentional, matching how upstream clients
// surface payloads with no text fragments at all.
func ExtractResponseText(resp *responses.Response) string {
	if text := resp.OutputText(); text != "" {
		return text
	}

	var parts []string
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, content := range item.Content {
			if content.Text != "" {
				parts = append(parts, content.Text)
			}
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "")
	}

	return fmt.Sprintf("%v", resp.Output)
}
