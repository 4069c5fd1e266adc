package model

import (
	"context"
	"strings"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

const (
	EchoHelp = "This is a simulated response in test mode. Here are some commands you can try:\n" +
		"- Create a new file\n- Fix a bug\n- Refactor code\n- Add tests"
	EchoExit   = "Exiting DeepCoder. Goodbye!"
	EchoCreate = "I'll create that for you. This is a simulated response in test mode, so no actual file will be created."
	EchoFix    = "I'll help fix that issue. This is a simulated response in test mode, so no actual changes will be made."
	echoWords  = 25
)

// Echo answers without a network call. It is used in test mode and when
// the DeepSeek key is still the setup placeholder.
type Echo struct {
	model  string
	params config.Parameters
}

var _ Model = &Echo{}

func NewEcho(model string, params config.Parameters) *Echo {
	return &Echo{model: model, params: params}
}

func (e *Echo) Generate(_ context.Context, prompt string) (agent.ModelResponse, error) {
	lower := strings.ToLower(prompt)

	var content string
	switch {
	case strings.Contains(lower, "help"):
		content = EchoHelp
	case containsAny(lower, "exit", "quit"):
		content = EchoExit
	case containsAny(lower, "create", "new", "add"):
		content = EchoCreate
	case containsAny(lower, "fix", "bug", "error"):
		content = EchoFix
	default:
		words := strings.Fields(prompt)
		if len(words) > echoWords {
			words = words[:echoWords]
		}
		content = "Echo (test mode): " + strings.Join(words, " ") + "..."
	}

	return agent.ModelResponse{
		Content: content,
		Raw: map[string]any{
			"choices": []map[string]any{{
				"message":       map[string]any{"role": "assistant", "content": content},
				"index":         0,
				"finish_reason": "stop",
			}},
			"model":     e.model,
			"test_mode": true,
		},
	}, nil
}

func (e *Echo) Info() Info {
	return Info{Provider: "DeepSeek (test mode)", Model: e.model, Parameters: e.params}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
