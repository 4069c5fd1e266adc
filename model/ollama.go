package model

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/config"
)

type Ollama struct {
	client *ollama.Client
	model  string
	host   string
	params config.Parameters
}

var _ Model = &Ollama{}

// NewOllama connects to host, or to the OLLAMA_HOST environment default
// when host is empty.
func NewOllama(host, model string, params config.Parameters, timeout time.Duration) (*Ollama, error) {
	var (
		client *ollama.Client
		err    error
	)
	if host == "" {
		client, err = ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("could not create ollama client: %w", err)
		}
	} else {
		if !strings.Contains(host, "://") {
			host = "http://" + host
		}
		u, err := url.Parse(host)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
		}
		client = ollama.NewClient(u, &nethttp.Client{Timeout: timeout})
	}

	return &Ollama{client: client, model: model, host: host, params: params}, nil
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (agent.ModelResponse, error) {
	stream := false
	options := map[string]interface{}{
		"temperature":       o.params.Temperature,
		"num_predict":       o.params.MaxTokens,
		"top_p":             o.params.TopP,
		"frequency_penalty": o.params.FrequencyPenalty,
		"presence_penalty":  o.params.PresencePenalty,
	}
	if len(o.params.Stop) > 0 {
		options["stop"] = o.params.Stop
	}

	req := &ollama.ChatRequest{
		Model:    o.model,
		Messages: []ollama.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options:  options,
	}

	var (
		sb   strings.Builder
		last ollama.ChatResponse
	)
	err := o.client.Chat(ctx, req, func(res ollama.ChatResponse) error {
		sb.WriteString(res.Message.Content)
		last = res
		return nil
	})
	if err != nil {
		var statusErr ollama.StatusError
		if errors.As(err, &statusErr) {
			msg := statusErr.ErrorMessage
			if msg == "" {
				msg = statusErr.Status
			}
			return apiError(statusErr.StatusCode, msg, nil), nil
		}
		return connectionError(err), nil
	}

	return agent.ModelResponse{Content: sb.String(), Raw: last}, nil
}

func (o *Ollama) Info() Info {
	return Info{Provider: "Ollama", Model: o.model, Endpoint: o.host, Parameters: o.params}
}
