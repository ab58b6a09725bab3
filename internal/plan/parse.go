package plan

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// planStepJSON is the wire shape for a generated plan step. Extra fields
// are ignored; missing or mistyped fields are defaulted rather than
// rejected.
type planStepJSON struct {
	Description json.RawMessage `json:"description"`
	Command     json.RawMessage `json:"command"`
}

// parsePlanJSON attempts to parse raw model output as a JSON array of
// {description, command} objects. It returns nil when the text is not such
// an array; callers then fall through to the unstructured extractor.
//
// Elements whose command merely echoes the task text back are skipped,
// unless the task itself looks like a shell command (a legitimate
// single-command task the model passed through).
func parsePlanJSON(raw, task string) []Step {
	raw = stripCodeFence(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elements); err != nil {
		return nil
	}

	return lo.FilterMap(elements, func(rawEl json.RawMessage, _ int) (Step, bool) {
		var el planStepJSON
		if err := json.Unmarshal(rawEl, &el); err != nil {
			// Not an object; skip the element.
			return Step{}, false
		}

		command := stringField(el.Command, task)
		if command == task && !LooksLikeCommand(task) {
			return Step{}, false
		}
		return Step{
			Description: stringField(el.Description, defaultDescription),
			Command:     command,
		}, true
	})
}

// stringField decodes a JSON value expected to be a string, returning the
// fallback when the field is missing or not a string.
func stringField(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

// stripCodeFence removes a surrounding markdown code fence, a common way
// for models to wrap otherwise valid JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return raw
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return raw
	}
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		return strings.Join(lines[1:len(lines)-1], "\n")
	}
	return raw
}
