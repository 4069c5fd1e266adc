package agent

import (
	"fmt"
	"path/filepath"
	"strings"
)

//go:generate mockgen -destination=policymocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Policy
type Policy interface {
	AllowWrite(cfg Config, change Change) error
}

const (
	PolicyKindPathEscape = "path_escape"
	PolicyKindNewFile    = "new_file"
	PolicyKindEmptyPath  = "empty_path"
)

type PolicyLimits struct {
	RestrictWritesToWorkDir bool
	DenyNewFiles            bool
}

type DefaultPolicy struct {
	limits PolicyLimits
}

func NewDefaultPolicy(limits PolicyLimits) *DefaultPolicy {
	return &DefaultPolicy{limits: limits}
}

func (p *DefaultPolicy) AllowWrite(cfg Config, change Change) error {
	if strings.TrimSpace(change.Path) == "" {
		return PolicyDeniedError{Kind: PolicyKindEmptyPath, Reason: "change has no path"}
	}

	if p.limits.DenyNewFiles && change.IsNewFile {
		return PolicyDeniedError{
			Kind:   PolicyKindNewFile,
			Reason: fmt.Sprintf("creating files is not allowed: %s", change.Path),
		}
	}

	if p.limits.RestrictWritesToWorkDir && cfg.WorkDir != "" && escapesWorkDir(cfg.WorkDir, change.Path) {
		return PolicyDeniedError{
			Kind:   PolicyKindPathEscape,
			Reason: fmt.Sprintf("path escapes workdir: workdir=%q path=%q", cfg.WorkDir, change.Path),
		}
	}

	return nil
}

// PolicyDeniedError is a typed error so callers can branch on it.
type PolicyDeniedError struct {
	Kind   string
	Reason string
}

func (e PolicyDeniedError) Error() string {
	return fmt.Sprintf("policy denied: kind=%s reason=%s", e.Kind, e.Reason)
}

// escapesWorkDir returns true if path, when resolved relative to workdir, is outside workdir.
func escapesWorkDir(workdir, path string) bool {
	wd := filepath.Clean(workdir)

	var full string
	if filepath.IsAbs(path) {
		full = filepath.Clean(path)
	} else {
		full = filepath.Clean(filepath.Join(wd, path))
	}

	if full == wd {
		return false
	}
	prefix := wd + string(filepath.Separator)
	return !strings.HasPrefix(full, prefix)
}
