package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSteps(t *testing.T) {
	t.Run("heading plus fenced command", func(t *testing.T) {
		raw := "Step one:\n```\nls -la\n```\n"
		steps := ExtractSteps(raw)

		require.Len(t, steps, 1)
		assert.Equal(t, "Step one:", steps[0].Description)
		assert.Equal(t, "ls -la", steps[0].Command)
	})

	t.Run("bare command line outside code block", func(t *testing.T) {
		steps := ExtractSteps("git status\n")

		require.Len(t, steps, 1)
		assert.Equal(t, defaultDescription, steps[0].Description)
		assert.Equal(t, "git status", steps[0].Command)
	})

	t.Run("non-command prose is dropped", func(t *testing.T) {
		steps := ExtractSteps("here is what I would do\nand then some more thoughts\n")
		assert.Empty(t, steps)
	})

	t.Run("description resets after each emitted step", func(t *testing.T) {
		raw := strings.Join([]string{
			"First, list the files:",
			"ls",
			"pwd is not in the allow list but this is:",
			"df -h",
			"free -m",
		}, "\n")
		steps := ExtractSteps(raw)

		require.Len(t, steps, 3)
		assert.Equal(t, "First, list the files:", steps[0].Description)
		assert.Equal(t, "ls", steps[0].Command)
		assert.Equal(t, "df -h", steps[1].Command)
		assert.Equal(t, defaultDescription, steps[2].Description)
	})

	t.Run("everything inside a code block is a command", func(t *testing.T) {
		raw := "```bash\nsome-custom-script.sh --flag\nmake build\n```\n"
		steps := ExtractSteps(raw)

		require.Len(t, steps, 2)
		assert.Equal(t, "some-custom-script.sh --flag", steps[0].Command)
		assert.Equal(t, "make build", steps[1].Command)
	})

	t.Run("long colon lines are not descriptions", func(t *testing.T) {
		longLine := "explanation: " + strings.Repeat("x", 100)
		steps := ExtractSteps(longLine + "\nls\n")

		require.Len(t, steps, 1)
		assert.Equal(t, defaultDescription, steps[0].Description)
	})

	t.Run("empty input yields no steps", func(t *testing.T) {
		assert.Empty(t, ExtractSteps(""))
		assert.Empty(t, ExtractSteps("\n\n\n"))
	})
}
