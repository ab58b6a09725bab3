package repl

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atinylittleshell/plansh/internal/executor"
	"github.com/atinylittleshell/plansh/internal/history"
	"github.com/atinylittleshell/plansh/internal/plan"
	"github.com/atinylittleshell/plansh/internal/repl/render"
	"github.com/atinylittleshell/plansh/internal/sysinfo"
)

// CommandRunner executes a shell command and captures its outcome.
type CommandRunner interface {
	Run(ctx context.Context, command string) (executor.Result, error)
}

// PlanSource generates and regenerates plans for a task.
type PlanSource interface {
	Generate(ctx context.Context, task string) *plan.Plan
	Regenerate(ctx context.Context, task, renderedHistory string, completed, total int) *plan.Plan
}

// Completer sends a prompt to the completion service (analysis pass).
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Orchestrator drives a single task from classification through execution
// to the optional analysis pass. It owns the in-flight plan; the session
// ledger is shared across tasks and owned by the caller.
type Orchestrator struct {
	runner    CommandRunner
	plans     PlanSource
	completer Completer
	ledger    *history.Ledger
	sysInfo   *sysinfo.Info
	asker     Asker
	renderer  *render.Renderer
	logger    *zap.Logger
}

// OrchestratorOptions bundles the collaborators for NewOrchestrator.
type OrchestratorOptions struct {
	Runner    CommandRunner
	Plans     PlanSource
	Completer Completer
	Ledger    *history.Ledger
	SysInfo   *sysinfo.Info
	Asker     Asker
	Renderer  *render.Renderer
	Logger    *zap.Logger
}

// NewOrchestrator creates an Orchestrator. The logger is optional.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		runner:    opts.Runner,
		plans:     opts.Plans,
		completer: opts.Completer,
		ledger:    opts.Ledger,
		sysInfo:   opts.SysInfo,
		asker:     opts.Asker,
		renderer:  opts.Renderer,
		logger:    logger,
	}
}

// RunTask processes one task line. The only error it returns is a command
// that could not be run at all; the caller keeps the session alive either
// way.
func (o *Orchestrator) RunTask(ctx context.Context, task string) error {
	complexity := plan.Classify(task)
	o.logger.Info("task classified",
		zap.String("task", task),
		zap.Stringer("complexity", complexity),
	)

	if complexity == plan.Simple {
		if err := o.runDirect(ctx, task); err != nil {
			return err
		}
		return o.analyze(ctx, task)
	}

	cancelled, err := o.runPlanned(ctx, task)
	if err != nil {
		return err
	}
	if cancelled {
		// Explicit cancellation skips the analysis pass.
		return nil
	}
	return o.analyze(ctx, task)
}

// runDirect executes the raw task text as a shell command.
func (o *Orchestrator) runDirect(ctx context.Context, task string) error {
	result, err := o.runner.Run(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to execute %q: %w", task, err)
	}

	o.ledger.Append(task, result.Stdout, result.Stderr, result.ExitCode)
	o.renderer.RenderResult(result)
	return nil
}

// runPlanned generates a plan and walks it step by step. It reports whether
// the user cancelled the plan after a failed step.
func (o *Orchestrator) runPlanned(ctx context.Context, task string) (cancelled bool, err error) {
	p := o.plans.Generate(ctx, task)
	originalTotal := p.Len()

	o.logger.Info("plan generated", zap.Int("steps", originalTotal))

	// The plan can change length mid-loop when a regeneration rewrites its
	// tail, so the bound must re-read the live length.
	for i := 0; i < p.Len(); i++ {
		step := p.Step(i)
		o.renderer.RenderStep(i, p.Len(), step)

		if o.asker.ConfirmStep() != Yes {
			o.renderer.RenderNotice("step skipped")
			o.logger.Info("step skipped", zap.Int("index", i))
		} else {
			result, err := o.runner.Run(ctx, step.Command)
			if err != nil {
				return false, fmt.Errorf("failed to execute %q: %w", step.Command, err)
			}

			o.ledger.Append(step.Command, result.Stdout, result.Stderr, result.ExitCode)
			o.renderer.RenderResult(result)

			if result.ExitCode != 0 {
				if o.asker.ConfirmContinueAfterError() == No {
					o.logger.Info("plan cancelled after failed step", zap.Int("index", i))
					return true, nil
				}
			}
		}

		if i < p.Len()-1 && o.asker.ConfirmAdjust() == Yes {
			o.adjustPlan(ctx, task, p, i, originalTotal)
		}
	}

	return false, nil
}

// adjustPlan asks the generator for a revised tail and splices it into the
// in-flight plan. An empty regeneration leaves the original tail untouched.
func (o *Orchestrator) adjustPlan(ctx context.Context, task string, p *plan.Plan, current, originalTotal int) {
	regenerated := o.plans.Regenerate(ctx, task, o.ledger.Render(), current+1, originalTotal)
	if regenerated.Len() == 0 {
		o.renderer.RenderNotice("plan unchanged")
		return
	}

	p.Truncate(current + 1)
	p.Append(regenerated.Steps()...)
	o.logger.Info("plan tail regenerated",
		zap.Int("after", current),
		zap.Int("newSteps", regenerated.Len()),
	)
	o.renderer.RenderNotice(fmt.Sprintf("plan updated: %d remaining step(s)", regenerated.Len()))
}

// analyze offers a natural-language summary of everything executed so far
// in the session. A transport failure degrades to a local notice.
func (o *Orchestrator) analyze(ctx context.Context, task string) error {
	if o.ledger.Empty() {
		return nil
	}

	if o.asker.ConfirmAnalyze() != Yes {
		return nil
	}

	analysis, err := o.completer.Complete(ctx, o.buildAnalysisPrompt(task))
	if err != nil {
		o.logger.Warn("analysis request failed", zap.Error(err))
		o.renderer.RenderNotice("analysis unavailable; review the command output above")
		return nil
	}

	o.renderer.RenderAnalysis(analysis)
	return nil
}

func (o *Orchestrator) buildAnalysisPrompt(task string) string {
	var sb strings.Builder
	if rendered := o.sysInfo.Render(); rendered != "" {
		sb.WriteString(rendered)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Task: %s\n\n", task)
	sb.WriteString("The following commands were executed:\n")
	sb.WriteString(o.ledger.Render())
	sb.WriteString("\nSummarize what happened and whether the task succeeded. ")
	sb.WriteString("Mention any errors and how to fix them. Be brief.\n")
	return sb.String()
}
