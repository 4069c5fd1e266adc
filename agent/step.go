package agent

import (
	"encoding/json"
	"fmt"
)

type Action string

const (
	ActionReadFile            Action = "read_file"
	ActionSearchFiles         Action = "search_files"
	ActionGenerateChanges     Action = "generate_changes"
	ActionGenerateExplanation Action = "generate_explanation"
	ActionPresentChanges      Action = "present_changes"
	ActionConfirmChanges      Action = "confirm_changes"
	ActionApplyChanges        Action = "apply_changes"
	ActionPresentExplanation  Action = "present_explanation"
	ActionGitStage            Action = "git_stage_changes"
	ActionGitCommit           Action = "git_commit_changes"
)

// Step is one entry of a Plan. The concrete types below are the only
// variants the planner emits.
type Step interface {
	Action() Action
}

type ReadFile struct {
	Path string
}

type SearchFiles struct {
	Criteria SearchCriteria
}

type SearchCriteria struct {
	TaskType TaskType `json:"task_type"`
	Entities Entities `json:"entities"`
}

type GenerateChanges struct {
	TaskType    TaskType
	Instruction string
}

type GenerateExplanation struct {
	Instruction string
}

// Delegate is a step handed to a collaborator as-is: presenting,
// confirming, applying, and the git actions. Message is only set for
// git commits.
type Delegate struct {
	Act     Action
	Message string
}

func (ReadFile) Action() Action            { return ActionReadFile }
func (SearchFiles) Action() Action         { return ActionSearchFiles }
func (GenerateChanges) Action() Action     { return ActionGenerateChanges }
func (GenerateExplanation) Action() Action { return ActionGenerateExplanation }
func (d Delegate) Action() Action          { return d.Act }

type Plan struct {
	Instruction string
	TaskType    TaskType
	Entities    Entities
	Steps       []Step
}

// Actions lists the action tag of every step in order.
func (p Plan) Actions() []Action {
	out := make([]Action, 0, len(p.Steps))
	for _, s := range p.Steps {
		out = append(out, s.Action())
	}
	return out
}

func (p Plan) Has(a Action) bool {
	for _, s := range p.Steps {
		if s.Action() == a {
			return true
		}
	}
	return false
}

type planJSON struct {
	Instruction string     `json:"instruction"`
	TaskType    TaskType   `json:"task_type"`
	Entities    Entities   `json:"entities"`
	Steps       []stepJSON `json:"steps"`
}

type stepJSON struct {
	Action      Action          `json:"action"`
	Path        string          `json:"file_path,omitempty"`
	Criteria    *SearchCriteria `json:"criteria,omitempty"`
	TaskType    TaskType        `json:"task_type,omitempty"`
	Instruction string          `json:"instruction,omitempty"`
	Message     string          `json:"message,omitempty"`
}

func (p Plan) MarshalJSON() ([]byte, error) {
	pj := planJSON{
		Instruction: p.Instruction,
		TaskType:    p.TaskType,
		Entities:    p.Entities,
		Steps:       make([]stepJSON, 0, len(p.Steps)),
	}

	for i, s := range p.Steps {
		sj, err := toStepJSON(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		pj.Steps = append(pj.Steps, sj)
	}

	return json.Marshal(pj)
}

func toStepJSON(s Step) (stepJSON, error) {
	switch v := s.(type) {
	case ReadFile:
		return stepJSON{Action: v.Action(), Path: v.Path}, nil
	case SearchFiles:
		c := v.Criteria
		return stepJSON{Action: v.Action(), Criteria: &c}, nil
	case GenerateChanges:
		return stepJSON{Action: v.Action(), TaskType: v.TaskType, Instruction: v.Instruction}, nil
	case GenerateExplanation:
		return stepJSON{Action: v.Action(), Instruction: v.Instruction}, nil
	case Delegate:
		return stepJSON{Action: v.Act, Message: v.Message}, nil
	case nil:
		return stepJSON{}, fmt.Errorf("nil step")
	default:
		return stepJSON{Action: s.Action()}, nil
	}
}
