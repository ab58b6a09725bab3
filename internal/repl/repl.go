// Package repl implements the interactive plansh session: a line-oriented
// read loop that hands each task to the execution orchestrator.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/atinylittleshell/plansh/internal/history"
	"github.com/atinylittleshell/plansh/internal/plan"
	"github.com/atinylittleshell/plansh/internal/repl/render"
	"github.com/atinylittleshell/plansh/internal/styles"
)

// exitCommand is the literal input that ends the session.
const exitCommand = "salir"

// recentTaskLimit caps the prior-session recall shown at startup.
const recentTaskLimit = 3

// REPL is the interactive session loop.
type REPL struct {
	orchestrator *Orchestrator
	store        *history.Store
	prompt       string
	in           io.Reader
	out          io.Writer
	logger       *zap.Logger
}

// Options configures a REPL.
type Options struct {
	Orchestrator *Orchestrator
	// Store is optional; task lines are not persisted when nil.
	Store  *history.Store
	Prompt string
	In     io.Reader
	Out    io.Writer
	Logger *zap.Logger
}

// New creates a REPL.
func New(opts Options) *REPL {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}
	return &REPL{
		orchestrator: opts.Orchestrator,
		store:        opts.Store,
		prompt:       prompt,
		in:           in,
		out:          out,
		logger:       logger,
	}
}

// Run reads task lines until the exit command or end of input. Task
// processing errors are reported and the loop continues; only explicit
// user exit (or EOF) ends the session.
func (r *REPL) Run(ctx context.Context) error {
	r.printRecentTasks()

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, r.prompt)

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line == "" {
					fmt.Fprintln(r.out)
					return nil
				}
				// Process the final unterminated line, then stop.
			} else {
				return fmt.Errorf("failed to read input: %w", err)
			}
		}

		input := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(input) == exitCommand {
			return nil
		}

		r.handleTask(ctx, input)

		if err == io.EOF {
			return nil
		}
	}
}

// handleTask records the task line and runs it. An empty line is a valid
// task and goes through the classifier like any other input.
func (r *REPL) handleTask(ctx context.Context, input string) {
	entry := r.recordTask(input)

	if err := r.orchestrator.RunTask(ctx, input); err != nil {
		r.logger.Error("task failed", zap.String("task", input), zap.Error(err))
		fmt.Fprintln(r.out, styles.ERROR(err.Error()))
		return
	}

	if entry != nil {
		if _, err := r.store.FinishTask(entry); err != nil {
			r.logger.Warn("failed to update task history", zap.Error(err))
		}
	}
}

// printRecentTasks recalls the last few task lines from earlier sessions.
func (r *REPL) printRecentTasks() {
	if r.store == nil {
		return
	}

	entries, err := r.store.RecentTasks(recentTaskLimit)
	if err != nil {
		r.logger.Warn("failed to load recent tasks", zap.Error(err))
		return
	}
	for _, entry := range entries {
		fmt.Fprintln(r.out, render.DimStyle.Render("recent: "+entry.Input))
	}
}

func (r *REPL) recordTask(input string) *history.TaskEntry {
	if r.store == nil {
		return nil
	}

	entry, err := r.store.RecordTask(input, plan.Classify(input).String())
	if err != nil {
		r.logger.Warn("failed to record task history", zap.Error(err))
		return nil
	}
	return entry
}
