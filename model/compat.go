package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/api"
	"github.com/IlliquidAsset/deepcoder/api/http"
	"github.com/IlliquidAsset/deepcoder/config"
)

type CompatOptions struct {
	Provider string
	URL      string
	APIKey   string

	// Model is sent in the request body; endpoints bound to a single model
	// leave it empty and set InfoModel for display.
	Model      string
	InfoModel  string
	Parameters config.Parameters
}

// Compat talks to OpenAI-compatible chat-completions endpoints.
type Compat struct {
	caller http.Caller
	opts   CompatOptions
}

var _ Model = &Compat{}

func NewCompat(caller http.Caller, opts CompatOptions) *Compat {
	return &Compat{caller: caller, opts: opts}
}

func (c *Compat) Generate(ctx context.Context, prompt string) (agent.ModelResponse, error) {
	p := c.opts.Parameters
	req := api.CompletionsRequest{
		Model:            c.opts.Model,
		Messages:         []api.Message{{Role: api.RoleUser, Content: prompt}},
		Temperature:      p.Temperature,
		MaxTokens:        p.MaxTokens,
		TopP:             p.TopP,
		FrequencyPenalty: p.FrequencyPenalty,
		PresencePenalty:  p.PresencePenalty,
		Stop:             p.Stop,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return agent.ModelResponse{}, err
	}

	raw, err := c.caller.Post(ctx, c.opts.URL, body, http.BearerHeaders(c.opts.APIKey))
	if err != nil {
		var statusErr http.StatusError
		if errors.As(err, &statusErr) {
			return apiError(statusErr.Code, statusErr.Message, decodeRaw(raw)), nil
		}
		return connectionError(err), nil
	}

	if len(raw) == 0 {
		return agent.ModelResponse{Error: fmt.Sprintf(errUnexpected, errEmptyResponse)}, nil
	}

	var response api.CompletionsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return agent.ModelResponse{
			Raw:   string(raw),
			Error: fmt.Sprintf(errUnexpected, "failed to decode response: "+err.Error()),
		}, nil
	}

	return agent.ModelResponse{Content: response.Content(), Raw: response}, nil
}

func (c *Compat) Info() Info {
	model := c.opts.Model
	if model == "" {
		model = c.opts.InfoModel
	}
	return Info{
		Provider:   c.opts.Provider,
		Model:      model,
		Endpoint:   c.opts.URL,
		Parameters: c.opts.Parameters,
	}
}

func decodeRaw(raw []byte) any {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil {
		return m
	}
	return string(raw)
}
