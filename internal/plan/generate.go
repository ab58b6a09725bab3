package plan

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atinylittleshell/plansh/internal/sysinfo"
)

// Completer sends a prompt to a text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator produces plans for tasks by prompting a completion service and
// parsing whatever comes back through a layered fallback chain:
// strict JSON first, then the unstructured extractor, then a synthetic
// default. Generate never returns an empty plan; Regenerate may, and an
// empty regeneration means "keep the original tail".
type Generator struct {
	completer Completer
	sysInfo   *sysinfo.Info
	logger    *zap.Logger
}

// NewGenerator creates a Generator. sysInfo may be nil; the logger is
// optional.
func NewGenerator(completer Completer, sysInfo *sysinfo.Info, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		completer: completer,
		sysInfo:   sysInfo,
		logger:    logger,
	}
}

// Generate builds a plan for the task. It never fails: a transport error
// yields a deterministic two-step fallback plan, and unusable output
// degrades through the extractor down to a single synthetic step.
func (g *Generator) Generate(ctx context.Context, task string) *Plan {
	response, err := g.completer.Complete(ctx, g.buildGeneratePrompt(task))
	if err != nil {
		g.logger.Warn("plan generation request failed, using fallback plan", zap.Error(err))
		return New(
			Step{Description: "analyze the requested task", Command: "true"},
			Step{Description: "execute locally inferred command", Command: task},
		)
	}

	steps := parsePlanJSON(response, task)
	if len(steps) == 0 {
		g.logger.Debug("structured plan parse produced no steps, extracting from raw text")
		steps = ExtractSteps(response)
	}
	if len(steps) == 0 {
		steps = []Step{{Description: "execute the requested command", Command: task}}
	}

	return New(steps...)
}

// Regenerate produces the remaining steps of a plan after some have run,
// using the rendered execution history as context. An empty result is
// well defined (no change) so, unlike Generate, no synthetic step is ever
// fabricated.
func (g *Generator) Regenerate(ctx context.Context, task, renderedHistory string, completed, total int) *Plan {
	prompt := g.buildRegeneratePrompt(task, renderedHistory, completed, total)

	response, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("plan regeneration request failed, keeping original plan", zap.Error(err))
		return New()
	}

	steps := parsePlanJSON(response, task)
	if len(steps) == 0 {
		steps = ExtractSteps(response)
	}

	return New(steps...)
}

func (g *Generator) buildGeneratePrompt(task string) string {
	var sb strings.Builder
	g.writeContext(&sb)

	sb.WriteString("You are a Linux terminal expert. ")
	sb.WriteString("Break the following task into shell commands.\n\n")
	fmt.Fprintf(&sb, "Task: %s\n\n", task)
	sb.WriteString("Respond with only a JSON array of objects, each with exactly ")
	sb.WriteString(`two string fields "description" and "command". No prose, no markdown.`)
	sb.WriteString("\n")

	return sb.String()
}

func (g *Generator) buildRegeneratePrompt(task, renderedHistory string, completed, total int) string {
	var sb strings.Builder
	g.writeContext(&sb)

	sb.WriteString("You are a Linux terminal expert revising a plan in progress.\n\n")
	fmt.Fprintf(&sb, "Task: %s\n", task)
	fmt.Fprintf(&sb, "Progress: %d of %d steps completed.\n\n", completed, total)
	sb.WriteString("Execution history so far:\n")
	sb.WriteString(renderedHistory)
	sb.WriteString("\nBased on these results, respond with only a JSON array of the ")
	sb.WriteString("REMAINING steps, each an object with exactly two string fields ")
	sb.WriteString(`"description" and "command". Return an empty array if the current `)
	sb.WriteString("plan needs no changes.\n")

	return sb.String()
}

func (g *Generator) writeContext(sb *strings.Builder) {
	if rendered := g.sysInfo.Render(); rendered != "" {
		sb.WriteString(rendered)
		sb.WriteString("\n")
	}
}
