package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/api"
	"github.com/IlliquidAsset/deepcoder/api/http"
	"github.com/IlliquidAsset/deepcoder/config"
)

const (
	DeepSeekAPIBase    = "https://api.deepseek.com/v1"
	TogetherAIAPIBase  = "https://api.together.xyz/v1"
	CompletionsPath    = "/chat/completions"
	PlaceholderAPIKey  = "YOUR_API_KEY_HERE"
	DefaultTogetherAI  = "deepseek-ai/deepseek-coder-v3"
	DefaultOpenAI      = "gpt-4o"
	DefaultAnthropic   = "claude-3-5-sonnet-latest"
	DefaultCohere      = "command-r-plus"
	DefaultOllama      = "deepseek-coder-v2"
	errAPIFormat       = "API Error (%d): %s"
	errConnection      = "Connection error: %s"
	errUnexpected      = "Unexpected error: %s"
	errEmptyResponse   = "empty response"
	errUnsupported     = "Unsupported model platform: %s"
	errMissingEndpoint = "Lightning AI endpoint URL is required"
)

// DeepSeekModels maps the configured model type to the model identifier.
var DeepSeekModels = map[string]string{
	config.ModelTypeCoderV3: "deepseek-ai/deepseek-coder-v3",
	config.ModelTypeV3Base:  "deepseek-ai/deepseek-v3-base",
	config.ModelTypeR1:      "deepseek-ai/deepseek-r1",
}

// Info describes the service behind a model adapter.
type Info struct {
	Provider   string            `json:"provider"`
	Model      string            `json:"model,omitempty"`
	Endpoint   string            `json:"endpoint,omitempty"`
	Parameters config.Parameters `json:"parameters"`
}

// Describer is implemented by every adapter this package builds.
type Describer interface {
	Info() Info
}

type Model interface {
	agent.Model
	Describer
}

type factory struct {
	caller http.Caller
	log    *zap.SugaredLogger
}

type Option func(*factory)

// WithCaller replaces the REST caller used by OpenAI-compatible platforms.
func WithCaller(c http.Caller) Option {
	return func(f *factory) { f.caller = c }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(f *factory) {
		if l != nil {
			f.log = l
		}
	}
}

// New builds the adapter selected by cfg.Platform.
func New(cfg config.ModelConfig, opts ...Option) (Model, error) {
	f := &factory{log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(f)
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if f.caller == nil {
		f.caller = http.New(http.Options{Timeout: timeout, SkipTLSVerify: cfg.SkipTLSVerify})
	}

	platform := strings.ToLower(cfg.Platform)
	if cfg.TestMode || (platform == config.PlatformDeepSeek && cfg.DeepSeekAPIKey == PlaceholderAPIKey) {
		f.log.Debugw("model in test mode", "platform", platform)
		return NewEcho(deepSeekModelName(cfg), cfg.Parameters), nil
	}

	switch platform {
	case config.PlatformDeepSeek:
		return f.deepSeek(cfg)
	case config.PlatformTogetherAI:
		if cfg.TogetherAPIKey == "" {
			return nil, errors.New("Together.ai API key is required")
		}
		return NewCompat(f.caller, CompatOptions{
			Provider:   "Together.ai",
			URL:        apiBase(cfg.APIBase, TogetherAIAPIBase) + CompletionsPath,
			APIKey:     cfg.TogetherAPIKey,
			Model:      orDefault(cfg.ModelName, DefaultTogetherAI),
			Parameters: cfg.Parameters,
		}), nil
	case config.PlatformLightning:
		if cfg.LightningEndpointURL == "" {
			return nil, errors.New(errMissingEndpoint)
		}
		if cfg.LightningAPIKey == "" {
			return nil, errors.New("Lightning AI API key is required")
		}
		return NewCompat(f.caller, CompatOptions{
			Provider:   "Lightning AI",
			URL:        cfg.LightningEndpointURL,
			APIKey:     cfg.LightningAPIKey,
			Model:      cfg.ModelName,
			Parameters: cfg.Parameters,
		}), nil
	case config.PlatformOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.APIBase, orDefault(cfg.ModelName, DefaultOpenAI), cfg.Parameters, timeout), nil
	case config.PlatformAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, errors.New("Anthropic API key is required")
		}
		return NewAnthropic(cfg.AnthropicAPIKey, cfg.APIBase, orDefault(cfg.ModelName, DefaultAnthropic), cfg.Parameters, timeout), nil
	case config.PlatformCohere:
		if cfg.CohereAPIKey == "" {
			return nil, errors.New("Cohere API key is required")
		}
		return NewCohere(cfg.CohereAPIKey, cfg.APIBase, orDefault(cfg.ModelName, DefaultCohere), cfg.Parameters), nil
	case config.PlatformOllama:
		return NewOllama(cfg.OllamaHost, orDefault(cfg.ModelName, DefaultOllama), cfg.Parameters, timeout)
	default:
		return nil, fmt.Errorf(errUnsupported, platform)
	}
}

func (f *factory) deepSeek(cfg config.ModelConfig) (Model, error) {
	name := deepSeekModelName(cfg)

	if cfg.UseLightning {
		if cfg.LightningEndpointURL == "" {
			return nil, errors.New(errMissingEndpoint + " when use_lightning=True")
		}
		if cfg.LightningAPIKey == "" {
			return nil, errors.New("Lightning AI API key is required when use_lightning=True")
		}
		return NewCompat(f.caller, CompatOptions{
			Provider:   "DeepSeek via Lightning AI",
			URL:        cfg.LightningEndpointURL,
			APIKey:     cfg.LightningAPIKey,
			InfoModel:  name,
			Parameters: cfg.Parameters,
		}), nil
	}

	if cfg.DeepSeekAPIKey == "" {
		return nil, errors.New("DeepSeek API key is required")
	}
	return NewCompat(f.caller, CompatOptions{
		Provider:   "DeepSeek",
		URL:        apiBase(cfg.APIBase, DeepSeekAPIBase) + CompletionsPath,
		APIKey:     cfg.DeepSeekAPIKey,
		Model:      name,
		Parameters: cfg.Parameters,
	}), nil
}

// deepSeekModelName resolves the model type, falling back to coder-v3 for
// unknown types. An explicit model name wins.
func deepSeekModelName(cfg config.ModelConfig) string {
	if cfg.ModelName != "" {
		return cfg.ModelName
	}
	if name, ok := DeepSeekModels[cfg.ModelType]; ok {
		return name
	}
	return DeepSeekModels[config.ModelTypeCoderV3]
}

func apiBase(configured, fallback string) string {
	if configured == "" {
		return fallback
	}
	return strings.TrimRight(configured, "/")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// errorMessage pulls error.message out of an API error body, falling back
// to the given text.
func errorMessage(raw, fallback string) string {
	var errorData api.ErrorResponse
	if err := json.Unmarshal([]byte(raw), &errorData); err == nil && errorData.Error.Message != "" {
		return errorData.Error.Message
	}
	if fallback == "" {
		return strings.TrimSpace(raw)
	}
	return fallback
}

func apiError(code int, msg string, raw any) agent.ModelResponse {
	return agent.ModelResponse{Raw: raw, Error: fmt.Sprintf(errAPIFormat, code, msg)}
}

func connectionError(err error) agent.ModelResponse {
	return agent.ModelResponse{Error: fmt.Sprintf(errConnection, err)}
}
