package plan

import "strings"

// defaultDescription is used for steps recovered without a nearby heading.
const defaultDescription = "plan step"

// maxDescriptionLength bounds how long a heading line may be before it is
// no longer treated as a step description.
const maxDescriptionLength = 100

// ExtractSteps recovers plan steps from free-form model output. It is the
// last parsing layer before giving up: a line-oriented scan that treats
// short heading lines ending in a colon as descriptions and emits a step
// for every fenced-code line or command-looking line. Unmatched lines are
// silently dropped; the extractor never fails.
func ExtractSteps(raw string) []Step {
	var steps []Step

	inCodeBlock := false
	pendingDescription := defaultDescription

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !inCodeBlock && strings.Contains(line, ":") && len(line) < maxDescriptionLength {
			pendingDescription = line
			continue
		}

		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			continue
		}

		if inCodeBlock || LooksLikeCommand(line) {
			steps = append(steps, Step{Description: pendingDescription, Command: line})
			pendingDescription = defaultDescription
		}
	}

	return steps
}
