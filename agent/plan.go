package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=plannermocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Planner
type Planner interface {
	Plan(ctx context.Context, instruction string) (Plan, error)
}

type GitOptions struct {
	AutoStage  bool
	AutoCommit bool
}

// BuildPlan turns a classified instruction into an ordered list of steps.
func BuildPlan(taskType TaskType, entities Entities, instruction string, git GitOptions) Plan {
	plan := Plan{
		Instruction: instruction,
		TaskType:    taskType,
		Entities:    entities,
	}

	if len(entities.Files) > 0 {
		for _, f := range entities.Files {
			plan.Steps = append(plan.Steps, ReadFile{Path: f})
		}
	} else {
		plan.Steps = append(plan.Steps, SearchFiles{
			Criteria: SearchCriteria{TaskType: taskType, Entities: entities},
		})
	}

	switch {
	case taskType.ProducesChanges():
		plan.Steps = append(plan.Steps,
			GenerateChanges{TaskType: taskType, Instruction: instruction},
			Delegate{Act: ActionPresentChanges},
			Delegate{Act: ActionConfirmChanges},
			Delegate{Act: ActionApplyChanges},
		)
		if git.AutoStage {
			plan.Steps = append(plan.Steps, Delegate{Act: ActionGitStage})
		}
		if git.AutoCommit {
			plan.Steps = append(plan.Steps, Delegate{
				Act:     ActionGitCommit,
				Message: CommitMessage(taskType, instruction),
			})
		}

	case taskType == TaskExplain:
		plan.Steps = append(plan.Steps,
			GenerateExplanation{Instruction: instruction},
			Delegate{Act: ActionPresentExplanation},
		)
	}

	return plan
}

// CommitMessage renders "<task name>: <instruction>", e.g. "fix bug: Fix login.py".
func CommitMessage(taskType TaskType, instruction string) string {
	name := strings.TrimLeftFunc(string(taskType), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	name = strings.ReplaceAll(name, "_", " ")
	return name + ": " + instruction
}

type DefaultPlanner struct {
	git GitOptions
}

func NewDefaultPlanner(git GitOptions) *DefaultPlanner {
	return &DefaultPlanner{git: git}
}

func (p *DefaultPlanner) Plan(_ context.Context, instruction string) (Plan, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return Plan{}, errors.New("missing instruction")
	}

	taskType, entities := Classify(instruction)
	return BuildPlan(taskType, entities, instruction, p.git), nil
}

type LoggingPlanner struct {
	inner Planner
	log   *zap.SugaredLogger

	// overwritten every run
	planPath string
}

func NewLoggingPlanner(inner Planner, logs *Logs) *LoggingPlanner {
	lp := &LoggingPlanner{
		inner: inner,
		log:   zap.NewNop().Sugar(),
	}

	if logs == nil {
		return lp
	}
	if logs.DebugLogger != nil {
		lp.log = logs.DebugLogger
	}
	if logs.Dir != "" {
		lp.planPath = filepath.Join(logs.Dir, "plan.json")
	}
	return lp
}

func (p *LoggingPlanner) Plan(ctx context.Context, instruction string) (Plan, error) {
	p.log.Debugf("planner: start instruction_len=%d", len(strings.TrimSpace(instruction)))

	plan, err := p.inner.Plan(ctx, instruction)
	if err != nil {
		p.log.Debugf("planner: error=%v", err)
		return Plan{}, err
	}

	p.writePlan(plan)

	p.log.Debugw("planner: ok",
		"task_type", plan.TaskType,
		"files", plan.Entities.Files,
		"functions", plan.Entities.Functions,
		"actions", plan.Actions(),
	)
	return plan, nil
}

func (p *LoggingPlanner) writePlan(plan Plan) {
	if p.planPath == "" {
		return
	}
	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		p.log.Debugf("planner: failed to marshal plan: %v", err)
		return
	}
	_ = os.WriteFile(p.planPath, b, 0o644) // best-effort
}
