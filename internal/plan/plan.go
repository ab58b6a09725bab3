// Package plan contains the plan model and the layered parsing pipeline
// that turns unreliable model output into executable shell steps.
package plan

import "strings"

// Step is a single planned shell action: a human-readable description and
// the literal command text. Immutable once created.
type Step struct {
	Description string
	Command     string
}

// Plan is an ordered sequence of steps. Insertion order is execution order.
// The orchestrator mutates the in-flight plan when a regeneration rewrites
// its tail, so loop bounds must re-read Len rather than cache it.
type Plan struct {
	steps []Step
}

// New creates a plan from the given steps.
func New(steps ...Step) *Plan {
	return &Plan{steps: steps}
}

// Steps returns the steps in execution order.
func (p *Plan) Steps() []Step {
	return p.steps
}

// Step returns the step at index i.
func (p *Plan) Step(i int) Step {
	return p.steps[i]
}

// Len returns the current number of steps.
func (p *Plan) Len() int {
	return len(p.steps)
}

// Append adds steps to the end of the plan.
func (p *Plan) Append(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Truncate discards all steps beyond the first n.
func (p *Plan) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(p.steps) {
		p.steps = p.steps[:n]
	}
}

// Complexity classifies a task as directly executable or plan-worthy.
type Complexity int

const (
	Simple Complexity = iota
	Complex
)

func (c Complexity) String() string {
	if c == Simple {
		return "simple"
	}
	return "complex"
}

// simpleWordLimit is the word count below which a task runs directly as a
// shell command instead of going through planning.
const simpleWordLimit = 5

// Classify maps raw task text to Simple or Complex by word count.
// The count is space characters plus one, so consecutive spaces inflate it.
// That quirk is externally observable through the Simple/Complex boundary
// and is kept as is.
func Classify(task string) Complexity {
	words := strings.Count(task, " ") + 1
	if words < simpleWordLimit {
		return Simple
	}
	return Complex
}
