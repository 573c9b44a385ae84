package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/openai/openai-go/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the shared command tree with the given args. Flag state on
// the package-level commands persists across invocations, so every flag is
// reset to its default first to keep tests independent of each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(chatCmd.Flags())
	resetFlags(rootCmd.PersistentFlags())

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestInfoCommand_RequiresNoCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	output, err := execute(t, "info")

	require.NoError(t, err)
	assert.Contains(t, output, "OPENAI_BASE_URL")
	assert.Contains(t, output, "OPENAI_API_KEY")
	assert.Contains(t, output, "API COMPARISON")
	assert.Contains(t, output, "BACKGROUND PROCESSING")
	assert.Contains(t, output, "ZERO DATA RETENTION")
}

func TestInfoCommand_EndsWithSingleNewline(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	output, err := execute(t, "info")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(output, "\n"))
	assert.False(t, strings.HasSuffix(output, "\n\n"))
}

func TestChatCommand_RequiresModel(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	_, err := execute(t, "chat")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestChatCommand_RequiresModelAfterPriorInvocationSetIt(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	_, err := execute(t, "chat", "--model", "openai.gpt-oss-20b", "--completions", "--background")
	require.Error(t, err)

	_, err = execute(t, "chat")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model")
}

func TestChatCommand_RejectsBackgroundWithCompletions(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")

	_, err := execute(t, "chat", "--model", "openai.gpt-oss-20b", "--completions", "--background")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Responses API")
}

func TestPrintModels_AllFieldsAlwaysPrinted(t *testing.T) {
	var out bytes.Buffer

	printModels(&out, []openai.Model{
		{ID: "openai.gpt-oss-20b", Created: 1714003200, OwnedBy: "openai"},
		{ID: "openai.gpt-oss-120b"},
	})

	output := out.String()
	assert.Contains(t, output, "  ID: openai.gpt-oss-20b")
	assert.Contains(t, output, "      Created: 1714003200")
	assert.Contains(t, output, "      Owner: openai")
	// Records with unset fields still get every line
	assert.Contains(t, output, "  ID: openai.gpt-oss-120b")
	assert.Contains(t, output, "      Created: 0\n      Owner: \n")
}
