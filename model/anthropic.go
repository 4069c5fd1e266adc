package model

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

type Anthropic struct {
	client  anthropic.Client
	model   string
	baseURL string
	params  config.Parameters
}

var _ Model = &Anthropic{}

func NewAnthropic(apiKey, baseURL, model string, params config.Parameters, timeout time.Duration) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &Anthropic{
		client:  anthropic.NewClient(opts...),
		model:   model,
		baseURL: baseURL,
		params:  params,
	}
}

// Generate sends the prompt as a single user turn. The Messages API takes
// either temperature or top_p, so only temperature is forwarded.
func (a *Anthropic) Generate(ctx context.Context, prompt string) (agent.ModelResponse, error) {
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.params.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature:   anthropic.Float(a.params.Temperature),
		StopSequences: a.params.Stop,
	}

	msg, err := a.client.Messages.New(ctx, req)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			msg := errorMessage(apiErr.RawJSON(), "")
			if msg == "" {
				msg = apiErr.Error()
			}
			return apiError(apiErr.StatusCode, msg, apiErr.RawJSON()), nil
		}
		return connectionError(err), nil
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return agent.ModelResponse{Content: sb.String(), Raw: msg}, nil
}

func (a *Anthropic) Info() Info {
	return Info{Provider: "Anthropic", Model: a.model, Endpoint: a.baseURL, Parameters: a.params}
}
