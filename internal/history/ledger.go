// Package history tracks what a session has executed: an in-memory ledger
// of command outcomes used as LLM context, and a sqlite-backed store of the
// task lines entered at the prompt.
package history

import (
	"fmt"
	"strings"
)

// Entry records one executed command and its outcome. Immutable once
// appended.
type Entry struct {
	Command  string
	Stdout   string
	Stderr   string
	ExitCode int
}

// Ledger is the session-scoped, append-only record of command executions.
// It is never cleared mid-session and grows without bound; that is an
// accepted tradeoff for an interactive tool.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append records a command execution.
func (l *Ledger) Append(command, stdout, stderr string, exitCode int) {
	l.entries = append(l.entries, Entry{
		Command:  command,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
	})
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Empty reports whether nothing has been recorded yet.
func (l *Ledger) Empty() bool {
	return len(l.entries) == 0
}

// Render serializes all entries in append order into a single text block
// for prompt embedding. Rendering is side-effect free: repeated calls with
// no intervening Append produce identical text.
func (l *Ledger) Render() string {
	var sb strings.Builder
	for i, entry := range l.entries {
		fmt.Fprintf(&sb, "Command %d: %s\n", i+1, entry.Command)
		fmt.Fprintf(&sb, "Standard output:\n%s\n", entry.Stdout)
		if entry.ExitCode != 0 {
			fmt.Fprintf(&sb, "Error (exit code %d):\n%s\n", entry.ExitCode, entry.Stderr)
		}
	}
	return sb.String()
}
