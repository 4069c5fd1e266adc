package agent

import (
	"time"
)

type TaskType string

const (
	TaskRefactor   TaskType = "refactor"
	TaskAddFeature TaskType = "add_feature"
	TaskFixBug     TaskType = "fix_bug"
	TaskExplain    TaskType = "explain"
	TaskDocument   TaskType = "document"
	TaskUnknown    TaskType = "unknown"
)

// ProducesChanges reports whether the task type ends in file edits.
func (t TaskType) ProducesChanges() bool {
	switch t {
	case TaskRefactor, TaskAddFeature, TaskFixBug, TaskDocument:
		return true
	default:
		return false
	}
}

// Entities are the names the classifier pulled out of an instruction.
// A nil slice means the key is absent.
type Entities struct {
	Files     []string `json:"files,omitempty"`
	Functions []string `json:"functions,omitempty"`
}

type Config struct {
	WorkDir string
	DryRun  bool

	// RequireConfirmation makes a declined confirmation skip ApplyChanges.
	// When false the confirmation outcome is recorded but not enforced.
	RequireConfirmation bool
}

type Change struct {
	Path            string `json:"path"`
	OriginalContent string `json:"original_content"`
	NewContent      string `json:"new_content"`
	Diff            string `json:"diff"`
	IsNewFile       bool   `json:"is_new_file"`
}

type ModelResponse struct {
	Content string
	Raw     any
	Error   string
}

func (r ModelResponse) HasError() bool {
	return r.Error != ""
}

// FileSet is a path -> content mapping that remembers insertion order.
type FileSet struct {
	order   []string
	content map[string]string
}

func NewFileSet() *FileSet {
	return &FileSet{content: map[string]string{}}
}

func (f *FileSet) Put(path, content string) {
	if _, ok := f.content[path]; !ok {
		f.order = append(f.order, path)
	}
	f.content[path] = content
}

func (f *FileSet) Get(path string) (string, bool) {
	c, ok := f.content[path]
	return c, ok
}

func (f *FileSet) Has(path string) bool {
	_, ok := f.content[path]
	return ok
}

func (f *FileSet) Paths() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *FileSet) Len() int {
	return len(f.order)
}

// Map returns a copy of the contents keyed by path.
func (f *FileSet) Map() map[string]string {
	out := make(map[string]string, len(f.content))
	for k, v := range f.content {
		out[k] = v
	}
	return out
}

type ExecContext struct {
	Instruction string
	Files       *FileSet
	Changes     []Change
	Explanation string

	// Error is the formatted failure of the first step that failed.
	Error string
	Cause error

	Confirmed  bool
	Applied    []string
	CommitHash string

	Results []StepResult
}

func NewExecContext(instruction string) *ExecContext {
	return &ExecContext{
		Instruction: instruction,
		Files:       NewFileSet(),
		Changes:     []Change{},
	}
}

func (c *ExecContext) Failed() bool {
	return c.Error != ""
}

type OutcomeKind string

const (
	OutcomeOK      OutcomeKind = "ok"
	OutcomeDryRun  OutcomeKind = "dry-run"
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeError   OutcomeKind = "error"
)

type StepResult struct {
	Action     Action
	Outcome    OutcomeKind
	Transcript string // human-readable narrative of what happened
	Duration   time.Duration
}
