package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Deps are the collaborators an Agent needs. Clock, Planner and Executor
// are required.
type Deps struct {
	Clock    Clock
	Planner  Planner
	Executor Executor
	RunID    func() string
}

type Agent struct {
	clock    Clock
	planner  Planner
	executor Executor
	runID    func() string

	out   *zap.SugaredLogger
	debug *zap.SugaredLogger

	syncOut   func()
	syncDebug func()
}

type Option func(*Agent)

func WithHumanLogger(l *zap.SugaredLogger, sync func()) Option {
	return func(a *Agent) {
		if l != nil {
			a.out = l
		}
		if sync != nil {
			a.syncOut = sync
		}
	}
}

func WithDebugLogger(l *zap.SugaredLogger, sync func()) Option {
	return func(a *Agent) {
		if l != nil {
			a.debug = l
		}
		if sync != nil {
			a.syncDebug = sync
		}
	}
}

func validateDeps(deps Deps) error {
	if deps.Clock == nil {
		return fmt.Errorf("agent deps: Clock is required")
	}
	if deps.Planner == nil {
		return fmt.Errorf("agent deps: Planner is required")
	}
	if deps.Executor == nil {
		return fmt.Errorf("agent deps: Executor is required")
	}
	return nil
}

func New(deps Deps, opts ...Option) (*Agent, error) {
	if err := validateDeps(deps); err != nil {
		return nil, err
	}

	a := &Agent{
		clock:    deps.Clock,
		planner:  deps.Planner,
		executor: deps.Executor,
		runID:    deps.RunID,
		out:      zap.NewNop().Sugar(),
		debug:    zap.NewNop().Sugar(),
	}
	if a.runID == nil {
		a.runID = func() string { return "" }
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Run plans and executes one instruction. Failures end up in the
// returned Report rather than as an error.
func (a *Agent) Run(ctx context.Context, instruction string) Report {
	start := a.clock.Now()
	runID := a.runID()

	out := a.out
	dbg := a.debug

	out.Infof("Instruction: %s", instruction)
	dbg.Debugw("run: start", "run_id", runID)

	plan, err := a.planner.Plan(ctx, instruction)
	if err != nil {
		dbg.Errorf("planner error: %v", err)
		ec := NewExecContext(instruction)
		ec.Error = fmt.Sprintf("Error in planning: %v", err)
		ec.Cause = err
		return a.finish(runID, Plan{Instruction: instruction, TaskType: TaskUnknown}, ec, start)
	}

	out.Infof("Task type: %s", plan.TaskType)
	for i, s := range plan.Steps {
		out.Infof("Step %d/%d: %s", i+1, len(plan.Steps), describeStep(s))
	}
	out.Info("")

	ec := a.executor.Execute(ctx, plan, plan.Instruction)

	for i, res := range ec.Results {
		out.Infof("Step %d finished in %s (outcome=%s)", i+1, res.Duration, res.Outcome)
		if strings.TrimSpace(res.Transcript) != "" {
			dbg.Debugf("step %d transcript:\n%s", i+1, res.Transcript)
		}
	}

	if ec.Failed() {
		logStop(ec.Cause, out)
		out.Errorf("%s", ec.Error)
	}

	return a.finish(runID, plan, ec, start)
}

func (a *Agent) finish(runID string, plan Plan, ec *ExecContext, start time.Time) Report {
	dur := a.clock.Now().Sub(start)
	a.out.Infof("Total duration: %s", dur)
	a.debug.Infow("run: done", "run_id", runID, "duration", dur.String(), "error", ec.Error)

	if a.syncOut != nil {
		a.syncOut()
	}
	if a.syncDebug != nil {
		a.syncDebug()
	}
	return Assemble(runID, plan, ec, dur)
}

func describeStep(s Step) string {
	switch v := s.(type) {
	case ReadFile:
		return fmt.Sprintf("%s (path=%q)", v.Action(), v.Path)
	case SearchFiles:
		return fmt.Sprintf("%s (task_type=%s files=%v functions=%v)", v.Action(), v.Criteria.TaskType, v.Criteria.Entities.Files, v.Criteria.Entities.Functions)
	case Delegate:
		if v.Message != "" {
			return fmt.Sprintf("%s (message=%q)", v.Action(), v.Message)
		}
		return string(v.Action())
	case nil:
		return "<nil>"
	default:
		return string(v.Action())
	}
}

func logStop(err error, log *zap.SugaredLogger) {
	var pe PolicyDeniedError
	if errors.As(err, &pe) {
		log.Warnf("Policy denied (kind=%s): %s", pe.Kind, pe.Reason)
		return
	}
	var me ModelError
	if errors.As(err, &me) {
		log.Warnf("Model call failed: %s", me.Message)
	}
}
