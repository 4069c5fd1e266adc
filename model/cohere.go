package model

import (
	"context"
	"errors"

	co "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	core "github.com/cohere-ai/cohere-go/v2/core"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

type Cohere struct {
	client  *cohereclient.Client
	model   string
	baseURL string
	params  config.Parameters
}

var _ Model = &Cohere{}

func NewCohere(apiKey, baseURL, model string, params config.Parameters) *Cohere {
	opts := []core.ClientOption{cohereclient.WithToken(apiKey)}
	if baseURL != "" {
		opts = append(opts, cohereclient.WithBaseURL(baseURL))
	}
	return &Cohere{
		client:  cohereclient.NewClient(opts...),
		model:   model,
		baseURL: baseURL,
		params:  params,
	}
}

func (c *Cohere) Generate(ctx context.Context, prompt string) (agent.ModelResponse, error) {
	model := c.model
	temperature := c.params.Temperature
	maxTokens := c.params.MaxTokens
	topP := c.params.TopP
	frequency := c.params.FrequencyPenalty
	presence := c.params.PresencePenalty

	req := &co.ChatRequest{
		Message:          prompt,
		Model:            &model,
		Temperature:      &temperature,
		MaxTokens:        &maxTokens,
		P:                &topP,
		FrequencyPenalty: &frequency,
		PresencePenalty:  &presence,
		StopSequences:    c.params.Stop,
	}

	res, err := c.client.Chat(ctx, req)
	if err != nil {
		var apiErr *core.APIError
		if errors.As(err, &apiErr) {
			msg := apiErr.Error()
			if inner := apiErr.Unwrap(); inner != nil {
				msg = errorMessage(inner.Error(), inner.Error())
			}
			return apiError(apiErr.StatusCode, msg, nil), nil
		}
		return connectionError(err), nil
	}

	return agent.ModelResponse{Content: res.Text, Raw: res}, nil
}

func (c *Cohere) Info() Info {
	return Info{Provider: "Cohere", Model: c.model, Endpoint: c.baseURL, Parameters: c.params}
}
