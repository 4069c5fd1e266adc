package config

import (
	"fmt"
	"strings"

	"github.com/IlliquidAsset/deepcoder/internal"
)

// Validate checks the configuration. Missing credentials are only reported
// when strict is set; shape errors are always reported.
func Validate(cfg Config, strict bool) error {
	m := cfg.Model
	platform := strings.ToLower(m.Platform)

	if !contains(Platforms, platform) {
		return &ConfigurationError{Msg: fmt.Sprintf(
			"Invalid model platform: %s. Must be one of: %s.", m.Platform, strings.Join(Platforms, ", "))}
	}

	if err := validateParameters(m.Parameters); err != nil {
		return err
	}

	if _, err := internal.ParseLevel(cfg.Logging.Level); err != nil {
		return &ConfigurationError{Msg: fmt.Sprintf(
			"Invalid log level: %s. Must be DEBUG, INFO, WARNING, ERROR or CRITICAL.", cfg.Logging.Level)}
	}

	if cfg.Agent.MaxSearchFiles < 0 {
		return &ConfigurationError{Msg: "agent.max_search_files must not be negative"}
	}

	if platform == PlatformDeepSeek && !contains(ModelTypes, m.ModelType) {
		return &ConfigurationError{Msg: fmt.Sprintf(
			"Invalid DeepSeek model type: %s. Must be 'coder-v3', 'v3-base', or 'r1'.", m.ModelType)}
	}

	if !strict || m.TestMode {
		return nil
	}

	switch platform {
	case PlatformDeepSeek:
		if m.UseLightning {
			return requireLightning(m, " when use_lightning=True")
		}
		if m.DeepSeekAPIKey == "" {
			return missing("DeepSeek API key", "DEEPSEEK_API_KEY")
		}
	case PlatformLightning:
		return requireLightning(m, "")
	case PlatformTogetherAI:
		if m.TogetherAPIKey == "" {
			return missing("Together.ai API key", "TOGETHER_API_KEY")
		}
	case PlatformOpenAI:
		if m.OpenAIAPIKey == "" {
			return missing("OpenAI API key", "OPENAI_API_KEY")
		}
	case PlatformAnthropic:
		if m.AnthropicAPIKey == "" {
			return missing("Anthropic API key", "ANTHROPIC_API_KEY")
		}
	case PlatformCohere:
		if m.CohereAPIKey == "" {
			return missing("Cohere API key", "COHERE_API_KEY")
		}
	}

	return nil
}

func validateParameters(p Parameters) error {
	if p.Temperature < 0 || p.Temperature > 2 {
		return &ConfigurationError{Msg: fmt.Sprintf("Invalid temperature: %g. Must be between 0.0 and 2.0.", p.Temperature)}
	}
	if p.MaxTokens <= 0 {
		return &ConfigurationError{Msg: fmt.Sprintf("Invalid max_tokens: %d. Must be positive.", p.MaxTokens)}
	}
	if p.TopP < 0 || p.TopP > 1 {
		return &ConfigurationError{Msg: fmt.Sprintf("Invalid top_p: %g. Must be between 0.0 and 1.0.", p.TopP)}
	}
	return nil
}

func requireLightning(m ModelConfig, when string) error {
	if m.LightningEndpointURL == "" {
		return missing("Lightning AI endpoint URL"+when, "LIGHTNING_ENDPOINT_URL")
	}
	if m.LightningAPIKey == "" {
		return missing("Lightning AI API key"+when, "LIGHTNING_API_KEY")
	}
	return nil
}

func missing(what, env string) error {
	return &ConfigurationError{Msg: fmt.Sprintf(
		"Missing %s. Please provide it via config file or %s environment variable.", what, env)}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
