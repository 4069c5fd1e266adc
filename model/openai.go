package model

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

type OpenAI struct {
	client  openai.Client
	model   string
	baseURL string
	params  config.Parameters
}

var _ Model = &OpenAI{}

func NewOpenAI(apiKey, baseURL, model string, params config.Parameters, timeout time.Duration) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &OpenAI{
		client:  openai.NewClient(opts...),
		model:   model,
		baseURL: baseURL,
		params:  params,
	}
}

func (o *OpenAI) Generate(ctx context.Context, prompt string) (agent.ModelResponse, error) {
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(o.params.Temperature),
		MaxCompletionTokens: openai.Int(int64(o.params.MaxTokens)),
		TopP:                openai.Float(o.params.TopP),
		FrequencyPenalty:    openai.Float(o.params.FrequencyPenalty),
		PresencePenalty:     openai.Float(o.params.PresencePenalty),
	}
	if len(o.params.Stop) > 0 {
		req.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: o.params.Stop}
	}

	completion, err := o.client.Chat.Completions.New(ctx, req)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := errorMessage(apiErr.RawJSON(), apiErr.Message)
			if msg == "" {
				msg = apiErr.Error()
			}
			return apiError(apiErr.StatusCode, msg, apiErr.RawJSON()), nil
		}
		return connectionError(err), nil
	}

	var content string
	if len(completion.Choices) > 0 {
		content = completion.Choices[0].Message.Content
	}
	return agent.ModelResponse{Content: content, Raw: completion}, nil
}

func (o *OpenAI) Info() Info {
	return Info{Provider: "OpenAI", Model: o.model, Endpoint: o.baseURL, Parameters: o.params}
}
