package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/atinylittleshell/plansh/internal/executor"
	"github.com/atinylittleshell/plansh/internal/plan"
)

// Renderer writes user-facing output for the REPL.
type Renderer struct {
	writer io.Writer
}

// New creates a Renderer writing to the given writer.
func New(writer io.Writer) *Renderer {
	return &Renderer{writer: writer}
}

// RenderWelcome prints the startup banner.
func (r *Renderer) RenderWelcome(version, model string) {
	fmt.Fprintf(r.writer, "plansh %s", version)
	if model != "" {
		fmt.Fprintf(r.writer, " %s", DimStyle.Render("("+model+")"))
	}
	fmt.Fprintln(r.writer)
	fmt.Fprintln(r.writer, DimStyle.Render("describe a task, or type \"salir\" to exit"))
}

// RenderUpdateNotice prints a one-line newer-version notice.
func (r *Renderer) RenderUpdateNotice(latest string) {
	fmt.Fprintln(r.writer, DimStyle.Render(fmt.Sprintf("a newer version (%s) is available", latest)))
}

// RenderStep presents one plan step before confirmation.
func (r *Renderer) RenderStep(index, total int, step plan.Step) {
	fmt.Fprintf(r.writer, "%s\n", StepStyle.Render(fmt.Sprintf("[%d/%d] %s", index+1, total, step.Description)))
	fmt.Fprintf(r.writer, "  %s\n", CommandStyle.Render(step.Command))
}

// RenderResult prints a command outcome. Stderr and the exit code only
// appear when the command failed.
func (r *Renderer) RenderResult(result executor.Result) {
	if result.Stdout != "" {
		fmt.Fprint(r.writer, result.Stdout)
		if !strings.HasSuffix(result.Stdout, "\n") {
			fmt.Fprintln(r.writer)
		}
	}
	if result.ExitCode != 0 {
		fmt.Fprintln(r.writer, ErrorStyle.Render(fmt.Sprintf("exit code %d", result.ExitCode)))
		if result.Stderr != "" {
			fmt.Fprint(r.writer, ErrorStyle.Render(result.Stderr))
			if !strings.HasSuffix(result.Stderr, "\n") {
				fmt.Fprintln(r.writer)
			}
		}
	}
}

// RenderAnalysis prints the final analysis text.
func (r *Renderer) RenderAnalysis(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderNotice prints a secondary informational line.
func (r *Renderer) RenderNotice(text string) {
	fmt.Fprintln(r.writer, DimStyle.Render(text))
}

// RenderError prints an error line.
func (r *Renderer) RenderError(text string) {
	fmt.Fprintln(r.writer, ErrorStyle.Render(text))
}
