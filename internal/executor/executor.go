// Package executor provides shell command execution for plansh.
// Commands run through an mvdan/sh interpreter in a subshell with captured
// output, so a non-zero exit status is a normal result rather than an error.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Result captures the outcome of a single command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// threadSafeBuffer wraps bytes.Buffer for writers shared across goroutines
// spawned by the shell runner.
type threadSafeBuffer struct {
	buffer bytes.Buffer
	mutex  sync.Mutex
}

func (b *threadSafeBuffer) Write(p []byte) (n int, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.Write(p)
}

func (b *threadSafeBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String()
}

// ShellExecutor runs shell commands through a persistent interpreter.
// State such as the working directory and exported variables carries over
// between commands within a session.
type ShellExecutor struct {
	runner *interp.Runner
	logger *zap.Logger
}

// NewShellExecutor creates a ShellExecutor. The logger is optional.
func NewShellExecutor(logger *zap.Logger) (*ShellExecutor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	env := expand.ListEnviron(os.Environ()...)
	runner, err := interp.New(
		interp.Env(env),
		interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}

	return &ShellExecutor{
		runner: runner,
		logger: logger,
	}, nil
}

// Run executes a command in a subshell, capturing stdout and stderr.
// A non-zero exit status is returned in the Result with a nil error; an
// error is returned only when the command cannot be run at all.
func (e *ShellExecutor) Run(ctx context.Context, command string) (Result, error) {
	subShell := e.runner.Subshell()

	outBuf := &threadSafeBuffer{}
	errBuf := &threadSafeBuffer{}
	interp.StdIO(nil, io.Writer(outBuf), io.Writer(errBuf))(subShell) //nolint:errcheck

	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse command: %w", err)
	}

	e.logger.Debug("executing command", zap.String("command", command))

	err = subShell.Run(ctx, prog)

	exitCode := 0
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			exitCode = int(exitStatus)
		} else {
			return Result{Stdout: outBuf.String(), Stderr: errBuf.String(), ExitCode: 1},
				fmt.Errorf("command execution failed: %w", err)
		}
	}

	return Result{
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		ExitCode: exitCode,
	}, nil
}

// Pwd returns the interpreter's current working directory.
func (e *ShellExecutor) Pwd() string {
	return e.runner.Dir
}
