package agent

import (
	"context"
)

//go:generate mockgen -destination=modelmocks_test.go -package=agent_test github.com/IlliquidAsset/deepcoder/agent Model
type Model interface {
	// Generate sends a prompt to the model. Failures reported by the service
	// come back in ModelResponse.Error; the error return is for transport
	// failures that produced no response at all.
	Generate(ctx context.Context, prompt string) (ModelResponse, error)
}
