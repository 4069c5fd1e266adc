package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const transcriptMaxBytes = 64_000

//go:generate mockgen -destination=executormocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Executor
type Executor interface {
	Execute(ctx context.Context, plan Plan, instruction string) *ExecContext
}

// DefaultExecutor runs plan steps one at a time against a single
// ExecContext and stops at the first failing step.
type DefaultExecutor struct {
	tools  Tools
	clock  Clock
	policy Policy
	config Config
	log    *zap.SugaredLogger
}

type ExecutorOption func(*DefaultExecutor)

func WithExecutorLogger(l *zap.SugaredLogger) ExecutorOption {
	return func(e *DefaultExecutor) {
		if l != nil {
			e.log = l
		}
	}
}

func NewDefaultExecutor(t Tools, c Clock, p Policy, cfg Config, opts ...ExecutorOption) *DefaultExecutor {
	e := &DefaultExecutor{
		tools:  t,
		clock:  c,
		policy: p,
		config: cfg,
		log:    zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *DefaultExecutor) Execute(ctx context.Context, plan Plan, instruction string) *ExecContext {
	ec := NewExecContext(instruction)

	for i, step := range plan.Steps {
		action := actionOf(step)
		start := e.clock.Now()

		var (
			res StepResult
			err error
		)
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		} else {
			res, err = e.runStep(ctx, ec, step)
		}

		res.Action = action
		res.Duration = e.clock.Now().Sub(start)

		if errors.Is(err, ErrUnknownAction) {
			e.log.Warnf("Unknown action: %s", action)
			res.Outcome = OutcomeSkipped
			res.Transcript = limitTranscript(buildUnsupportedStepTranscript(action), transcriptMaxBytes)
			ec.Results = append(ec.Results, res)
			continue
		}

		if err != nil {
			se := StepError{Action: action, Err: err}
			ec.Error = se.Error()
			ec.Cause = se

			res.Outcome = OutcomeError
			res.Transcript = limitTranscript(appendStepError(res.Transcript, err), transcriptMaxBytes)
			ec.Results = append(ec.Results, res)

			e.log.Errorf("Error executing step %s: %v", action, err)
			break
		}

		res.Transcript = limitTranscript(res.Transcript, transcriptMaxBytes)
		ec.Results = append(ec.Results, res)
		e.log.Debugf("step %d/%d %s finished in %s (outcome=%s)", i+1, len(plan.Steps), action, res.Duration, res.Outcome)
	}

	return ec
}

func actionOf(step Step) Action {
	if step == nil {
		return Action("")
	}
	return step.Action()
}

func (e *DefaultExecutor) runStep(ctx context.Context, ec *ExecContext, step Step) (StepResult, error) {
	switch s := step.(type) {
	case ReadFile:
		return e.readFile(ec, s)
	case SearchFiles:
		return e.searchFiles(ec, s)
	case GenerateChanges:
		return e.generateChanges(ctx, ec, s)
	case GenerateExplanation:
		return e.generateExplanation(ctx, ec, s)
	case Delegate:
		return e.delegate(ctx, ec, s)
	default:
		return StepResult{}, ErrUnknownAction
	}
}

func (e *DefaultExecutor) readFile(ec *ExecContext, s ReadFile) (StepResult, error) {
	content, err := e.tools.Files.ReadFile(s.Path)
	if err != nil {
		return StepResult{Transcript: buildFileStartTranscript(s.Path)}, err
	}

	ec.Files.Put(s.Path, content)
	return StepResult{
		Outcome:    OutcomeOK,
		Transcript: buildFileReadTranscript(s.Path, content),
	}, nil
}

func (e *DefaultExecutor) searchFiles(ec *ExecContext, s SearchFiles) (StepResult, error) {
	paths, err := e.tools.Files.SearchFiles(s.Criteria)
	if err != nil {
		return StepResult{Transcript: buildSearchTranscript(s.Criteria, nil)}, err
	}

	for _, p := range paths {
		if ec.Files.Has(p) {
			continue
		}
		content, err := e.tools.Files.ReadFile(p)
		if err != nil {
			return StepResult{Transcript: buildSearchTranscript(s.Criteria, paths)}, err
		}
		ec.Files.Put(p, content)
	}

	return StepResult{
		Outcome:    OutcomeOK,
		Transcript: buildSearchTranscript(s.Criteria, paths),
	}, nil
}

func (e *DefaultExecutor) generateChanges(ctx context.Context, ec *ExecContext, s GenerateChanges) (StepResult, error) {
	prompt := BuildChangesPrompt(s.TaskType, s.Instruction, ec.Files)

	out, err := e.callModel(ctx, prompt)
	if err != nil {
		return StepResult{Transcript: buildModelStartTranscript(prompt)}, err
	}

	ec.Changes = ParseChanges(out, ec.Files, e.tools.Differ)
	return StepResult{
		Outcome:    OutcomeOK,
		Transcript: buildModelTranscript(prompt, out, len(ec.Changes)),
	}, nil
}

func (e *DefaultExecutor) generateExplanation(ctx context.Context, ec *ExecContext, s GenerateExplanation) (StepResult, error) {
	prompt := BuildExplanationPrompt(s.Instruction, ec.Files)

	out, err := e.callModel(ctx, prompt)
	if err != nil {
		return StepResult{Transcript: buildModelStartTranscript(prompt)}, err
	}

	ec.Explanation = out
	return StepResult{
		Outcome:    OutcomeOK,
		Transcript: buildModelTranscript(prompt, out, 0),
	}, nil
}

func (e *DefaultExecutor) callModel(ctx context.Context, prompt string) (string, error) {
	resp, err := e.tools.Model.Generate(ctx, prompt)
	if err != nil {
		return "", ModelError{Message: err.Error()}
	}
	if resp.HasError() {
		return "", ModelError{Message: resp.Error}
	}
	return resp.Content, nil
}

func (e *DefaultExecutor) delegate(ctx context.Context, ec *ExecContext, s Delegate) (StepResult, error) {
	switch s.Act {
	case ActionPresentChanges:
		if e.tools.Presenter == nil {
			return skipped(s.Act, "no presenter"), nil
		}
		if err := e.tools.Presenter.PresentChanges(ec.Changes); err != nil {
			return StepResult{}, err
		}
		return ok(fmt.Sprintf("[%s] changes=%d\n", s.Act, len(ec.Changes))), nil

	case ActionConfirmChanges:
		if len(ec.Changes) == 0 {
			return skipped(s.Act, "no changes"), nil
		}
		if e.tools.Presenter == nil {
			ec.Confirmed = !e.config.RequireConfirmation
			return skipped(s.Act, "no presenter"), nil
		}
		confirmed, err := e.tools.Presenter.ConfirmChanges(ec.Changes)
		if err != nil {
			return StepResult{}, err
		}
		ec.Confirmed = confirmed
		return ok(fmt.Sprintf("[%s] confirmed=%t\n", s.Act, confirmed)), nil

	case ActionApplyChanges:
		return e.applyChanges(ec)

	case ActionPresentExplanation:
		if e.tools.Presenter == nil {
			return skipped(s.Act, "no presenter"), nil
		}
		if err := e.tools.Presenter.PresentExplanation(ec.Explanation); err != nil {
			return StepResult{}, err
		}
		return ok(fmt.Sprintf("[%s] explanation_len=%d\n", s.Act, len(ec.Explanation))), nil

	case ActionGitStage:
		if res, done := e.gitPreflight(ec, s); done {
			return res, nil
		}
		if err := e.tools.Git.StageChanges(ctx, ec.Applied); err != nil {
			return StepResult{}, err
		}
		return ok(fmt.Sprintf("[%s] paths=%v\n", s.Act, ec.Applied)), nil

	case ActionGitCommit:
		if res, done := e.gitPreflight(ec, s); done {
			return res, nil
		}
		hash, err := e.tools.Git.CommitChanges(ctx, s.Message)
		if err != nil {
			return StepResult{}, err
		}
		ec.CommitHash = hash
		return ok(fmt.Sprintf("[%s] message=%q hash=%s\n", s.Act, s.Message, hash)), nil

	default:
		return StepResult{}, ErrUnknownAction
	}
}

func (e *DefaultExecutor) applyChanges(ec *ExecContext) (StepResult, error) {
	if len(ec.Changes) == 0 {
		return skipped(ActionApplyChanges, "no changes"), nil
	}
	if e.config.RequireConfirmation && !ec.Confirmed {
		return skipped(ActionApplyChanges, "not confirmed"), nil
	}
	if e.config.DryRun {
		return StepResult{
			Outcome:    OutcomeDryRun,
			Transcript: buildDryRunApplyTranscript(ec.Changes),
		}, nil
	}

	var b strings.Builder
	for _, c := range ec.Changes {
		if e.policy != nil {
			if err := e.policy.AllowWrite(e.config, c); err != nil {
				return StepResult{Transcript: b.String()}, err
			}
		}
		if err := e.tools.Files.WriteFile(c.Path, c.NewContent); err != nil {
			return StepResult{Transcript: b.String()}, err
		}
		ec.Applied = append(ec.Applied, c.Path)
		_, _ = fmt.Fprintf(&b, "[%s] path=%q new_file=%t bytes=%d\n", ActionApplyChanges, c.Path, c.IsNewFile, len(c.NewContent))
	}

	return ok(b.String()), nil
}

func (e *DefaultExecutor) gitPreflight(ec *ExecContext, s Delegate) (StepResult, bool) {
	if e.tools.Git == nil {
		return skipped(s.Act, "no git client"), true
	}
	if e.config.DryRun {
		return StepResult{
			Outcome:    OutcomeDryRun,
			Transcript: fmt.Sprintf("[dry-run][%s] message=%q\n", s.Act, s.Message),
		}, true
	}
	if len(ec.Applied) == 0 {
		return skipped(s.Act, "nothing applied"), true
	}
	return StepResult{}, false
}

func ok(transcript string) StepResult {
	return StepResult{Outcome: OutcomeOK, Transcript: transcript}
}

func skipped(a Action, reason string) StepResult {
	return StepResult{
		Outcome:    OutcomeSkipped,
		Transcript: fmt.Sprintf("[%s] skipped: %s\n", a, reason),
	}
}

func appendStepError(tr string, err error) string {
	if tr != "" && !strings.HasSuffix(tr, "\n") {
		tr += "\n"
	}
	return tr + fmt.Sprintf("[error] %v\n", err)
}

func buildFileStartTranscript(path string) string {
	return fmt.Sprintf("[file:start] op=%q path=%q\n", "read", path)
}

func buildFileReadTranscript(path, content string) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "[file] op=%q path=%q\n", "read", path)
	b.WriteString("content:\n")
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func buildSearchTranscript(c SearchCriteria, paths []string) string {
	return fmt.Sprintf("[search] task_type=%q files=%v functions=%v found=%v\n",
		c.TaskType, c.Entities.Files, c.Entities.Functions, paths)
}

func buildModelStartTranscript(prompt string) string {
	var b strings.Builder
	b.WriteString("[model:start]\n")
	b.WriteString("prompt:\n")
	b.WriteString(prompt)
	if !strings.HasSuffix(prompt, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func buildModelTranscript(prompt, output string, changes int) string {
	var b strings.Builder
	b.WriteString("[model]\n")
	b.WriteString("prompt:\n")
	b.WriteString(prompt)
	if !strings.HasSuffix(prompt, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("output:\n")
	b.WriteString(output)
	if output != "" && !strings.HasSuffix(output, "\n") {
		b.WriteString("\n")
	}
	if changes > 0 {
		_, _ = fmt.Fprintf(&b, "parsed_changes=%d\n", changes)
	}
	return b.String()
}

func buildDryRunApplyTranscript(changes []Change) string {
	var b strings.Builder
	for _, c := range changes {
		_, _ = fmt.Fprintf(&b, "[dry-run][%s] path=%q new_file=%t bytes=%d\n", ActionApplyChanges, c.Path, c.IsNewFile, len(c.NewContent))
	}
	return b.String()
}

func buildUnsupportedStepTranscript(a Action) string {
	return fmt.Sprintf("[unsupported] action=%q\n", a)
}

func limitTranscript(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "\n…(truncated)\n"
}
