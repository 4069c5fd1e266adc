package agent

import (
	"fmt"
	"strings"
	"time"
)

// Report is the outcome of one run as handed back to the caller.
type Report struct {
	RunID       string            `json:"run_id"`
	Instruction string            `json:"instruction"`
	TaskType    TaskType          `json:"task_type"`
	Entities    Entities          `json:"entities"`
	Plan        Plan              `json:"plan"`
	Files       map[string]string `json:"files"`
	FileOrder   []string          `json:"file_order"`
	Changes     []Change          `json:"changes"`
	Explanation string            `json:"explanation,omitempty"`
	Confirmed   bool              `json:"confirmed"`
	Applied     []string          `json:"applied,omitempty"`
	CommitHash  string            `json:"commit_hash,omitempty"`
	Error       string            `json:"error,omitempty"`
	Steps       []StepResult      `json:"-"`
	Duration    time.Duration     `json:"duration"`
}

// Assemble folds an execution context into a Report. Changes are always
// non-nil so an empty result still serializes as a list.
func Assemble(runID string, plan Plan, ec *ExecContext, dur time.Duration) Report {
	r := Report{
		RunID:       runID,
		Instruction: plan.Instruction,
		TaskType:    plan.TaskType,
		Entities:    plan.Entities,
		Plan:        plan,
		Files:       map[string]string{},
		Changes:     []Change{},
		Duration:    dur,
	}
	if ec == nil {
		return r
	}

	if ec.Instruction != "" {
		r.Instruction = ec.Instruction
	}
	if ec.Files != nil {
		r.Files = ec.Files.Map()
		r.FileOrder = ec.Files.Paths()
	}
	if ec.Changes != nil {
		r.Changes = ec.Changes
	}
	r.Explanation = ec.Explanation
	r.Confirmed = ec.Confirmed
	r.Applied = ec.Applied
	r.CommitHash = ec.CommitHash
	r.Error = ec.Error
	r.Steps = ec.Results
	return r
}

func (r Report) Succeeded() bool {
	return r.Error == ""
}

// Summary is a one-paragraph plain-text account of the run.
func (r Report) Summary() string {
	var b strings.Builder

	_, _ = fmt.Fprintf(&b, "Task: %s\n", r.TaskType)
	if r.Error != "" {
		_, _ = fmt.Fprintf(&b, "Error: %s\n", r.Error)
		return b.String()
	}

	_, _ = fmt.Fprintf(&b, "Files examined: %d\n", len(r.FileOrder))
	switch {
	case r.TaskType.ProducesChanges():
		_, _ = fmt.Fprintf(&b, "Changes generated: %d\n", len(r.Changes))
		_, _ = fmt.Fprintf(&b, "Changes applied: %d\n", len(r.Applied))
		if r.CommitHash != "" {
			_, _ = fmt.Fprintf(&b, "Commit: %s\n", r.CommitHash)
		}
	case r.TaskType == TaskExplain:
		_, _ = fmt.Fprintf(&b, "Explanation: %d chars\n", len(r.Explanation))
	}
	return b.String()
}
