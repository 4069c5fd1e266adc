package utils

import (
	"strings"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

const (
	NoColorEnv     = "NO_COLOR"
	shortHashChars = 7
)

// Instruction joins the positional arguments into one instruction.
func Instruction(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// GitOptions turns the git settings into plan options. Outside a
// repository everything is off and warn reports whether that dropped a
// requested setting.
func GitOptions(git config.GitConfig, isRepo bool) (opts agent.GitOptions, warn bool) {
	if !isRepo {
		return agent.GitOptions{}, git.AutoStage || git.AutoCommit
	}
	return agent.GitOptions{
		AutoStage:  git.AutoStage || git.AutoCommit,
		AutoCommit: git.AutoCommit,
	}, false
}

func ShortHash(hash string) string {
	if len(hash) <= shortHashChars {
		return hash
	}
	return hash[:shortHashChars]
}

// ColorEnabled follows the NO_COLOR convention.
func ColorEnabled(isTerminal bool, getenv func(string) string) bool {
	return isTerminal && getenv(NoColorEnv) == ""
}

// NeedsSetup reports whether the setup wizard should run before anything
// else.
func NeedsSetup(setupFlag, firstRun bool, instruction string, interactive bool) bool {
	if setupFlag {
		return true
	}
	return firstRun && instruction == "" && interactive
}
