package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinylittleshell/plansh/internal/styles"
)

// Decision is a yes/no answer to a confirmation question.
type Decision int

const (
	Yes Decision = iota
	No
)

// Asker is the confirmation capability injected into the orchestrator so
// the state machine can be tested without a real terminal. Each method
// documents its default for empty input.
type Asker interface {
	// ConfirmStep asks whether to run a plan step. Empty input and s/S
	// confirm; any other input, n/N included, skips the step.
	ConfirmStep() Decision
	// ConfirmContinueAfterError asks whether to keep going after a failed
	// step. Only an explicit n/N cancels; everything else continues.
	ConfirmContinueAfterError() Decision
	// ConfirmAdjust asks whether to regenerate the remaining plan.
	// Empty input means yes; only an explicit n/N declines.
	ConfirmAdjust() Decision
	// ConfirmAnalyze asks whether to run the final analysis pass.
	// Empty input means yes; only an explicit n/N declines.
	ConfirmAnalyze() Decision
}

// StdinAsker reads confirmation answers line by line.
type StdinAsker struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewStdinAsker creates an Asker reading from in and prompting on out.
func NewStdinAsker(in io.Reader, out io.Writer) *StdinAsker {
	return &StdinAsker{
		reader: bufio.NewReader(in),
		writer: out,
	}
}

func (a *StdinAsker) ConfirmStep() Decision {
	answer := a.ask("Run this step? [Y/n] ")
	if answer == "" || answer == "s" || answer == "S" {
		return Yes
	}
	return No
}

func (a *StdinAsker) ConfirmContinueAfterError() Decision {
	answer := a.ask("Continue with the plan despite the error? [Y/n] ")
	if answer == "n" || answer == "N" {
		return No
	}
	return Yes
}

func (a *StdinAsker) ConfirmAdjust() Decision {
	answer := a.ask("Adjust the plan based on this result? [Y/n] ")
	if answer == "n" || answer == "N" {
		return No
	}
	return Yes
}

func (a *StdinAsker) ConfirmAnalyze() Decision {
	answer := a.ask("Analyze the results? [Y/n] ")
	if answer == "n" || answer == "N" {
		return No
	}
	return Yes
}

// ask prints the question and returns the trimmed answer line. A read
// failure (EOF on stdin) is treated as an empty answer.
func (a *StdinAsker) ask(question string) string {
	fmt.Fprint(a.writer, styles.QUESTION(question))
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
