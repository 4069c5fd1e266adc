package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PlatformDeepSeek   = "deepseek"
	PlatformTogetherAI = "togetherai"
	PlatformLightning  = "lightningai"
	PlatformOpenAI     = "openai"
	PlatformAnthropic  = "anthropic"
	PlatformCohere     = "cohere"
	PlatformOllama     = "ollama"

	ModelTypeCoderV3 = "coder-v3"
	ModelTypeV3Base  = "v3-base"
	ModelTypeR1      = "r1"

	DefaultPlatform         = PlatformDeepSeek
	DefaultModelType        = ModelTypeCoderV3
	DefaultTemperature      = 0.2
	DefaultMaxTokens        = 2000
	DefaultTopP             = 0.95
	DefaultFrequencyPenalty = 0.0
	DefaultPresencePenalty  = 0.0
	DefaultTimeoutSeconds   = 120
	DefaultLogLevel         = "INFO"
	DefaultMaxSearchFiles   = 5
)

// Platforms lists every model platform the factory can build.
var Platforms = []string{
	PlatformDeepSeek,
	PlatformTogetherAI,
	PlatformLightning,
	PlatformOpenAI,
	PlatformAnthropic,
	PlatformCohere,
	PlatformOllama,
}

var ModelTypes = []string{ModelTypeCoderV3, ModelTypeV3Base, ModelTypeR1}

type Config struct {
	Model   ModelConfig   `yaml:"model" mapstructure:"model"`
	Agent   AgentConfig   `yaml:"agent" mapstructure:"agent"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Git     GitConfig     `yaml:"git" mapstructure:"git"`

	// File is the config file the values were read from, if any.
	File string `yaml:"-" mapstructure:"-"`
}

type ModelConfig struct {
	Platform  string `yaml:"platform" mapstructure:"platform"`
	ModelType string `yaml:"model_type" mapstructure:"model_type"`

	// ModelName overrides the platform's default model identifier.
	ModelName string `yaml:"model_name,omitempty" mapstructure:"model_name"`
	APIBase   string `yaml:"api_base,omitempty" mapstructure:"api_base"`

	DeepSeekAPIKey       string `yaml:"deepseek_api_key,omitempty" mapstructure:"deepseek_api_key"`
	UseLightning         bool   `yaml:"use_lightning" mapstructure:"use_lightning"`
	LightningEndpointURL string `yaml:"lightning_endpoint_url,omitempty" mapstructure:"lightning_endpoint_url"`
	LightningAPIKey      string `yaml:"lightning_api_key,omitempty" mapstructure:"lightning_api_key"`
	TogetherAPIKey       string `yaml:"together_api_key,omitempty" mapstructure:"together_api_key"`
	OpenAIAPIKey         string `yaml:"openai_api_key,omitempty" mapstructure:"openai_api_key"`
	AnthropicAPIKey      string `yaml:"anthropic_api_key,omitempty" mapstructure:"anthropic_api_key"`
	CohereAPIKey         string `yaml:"cohere_api_key,omitempty" mapstructure:"cohere_api_key"`
	OllamaHost           string `yaml:"ollama_host,omitempty" mapstructure:"ollama_host"`

	// APIKeyFile supplies the key of the selected platform from a file.
	APIKeyFile string `yaml:"api_key_file,omitempty" mapstructure:"api_key_file"`

	TestMode       bool `yaml:"test_mode,omitempty" mapstructure:"test_mode"`
	SkipTLSVerify  bool `yaml:"skip_tls_verify,omitempty" mapstructure:"skip_tls_verify"`
	TimeoutSeconds int  `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`

	Parameters Parameters `yaml:"parameters" mapstructure:"parameters"`
}

type Parameters struct {
	Temperature      float64  `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens        int      `yaml:"max_tokens" mapstructure:"max_tokens"`
	TopP             float64  `yaml:"top_p" mapstructure:"top_p"`
	FrequencyPenalty float64  `yaml:"frequency_penalty" mapstructure:"frequency_penalty"`
	PresencePenalty  float64  `yaml:"presence_penalty" mapstructure:"presence_penalty"`
	Stop             []string `yaml:"stop,omitempty" mapstructure:"stop"`
}

type AgentConfig struct {
	RequireConfirmation  bool `yaml:"require_confirmation" mapstructure:"require_confirmation"`
	RestrictWritesToRoot bool `yaml:"restrict_writes_to_root" mapstructure:"restrict_writes_to_root"`
	MaxSearchFiles       int  `yaml:"max_search_files" mapstructure:"max_search_files"`
	WritePlanJSON        bool `yaml:"write_plan_json" mapstructure:"write_plan_json"`
}

type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file,omitempty" mapstructure:"file"`
}

type GitConfig struct {
	AutoStage  bool `yaml:"auto_stage" mapstructure:"auto_stage"`
	AutoCommit bool `yaml:"auto_commit" mapstructure:"auto_commit"`
}

func Defaults() Config {
	return Config{
		Model: ModelConfig{
			Platform:       DefaultPlatform,
			ModelType:      DefaultModelType,
			TimeoutSeconds: DefaultTimeoutSeconds,
			Parameters: Parameters{
				Temperature:      DefaultTemperature,
				MaxTokens:        DefaultMaxTokens,
				TopP:             DefaultTopP,
				FrequencyPenalty: DefaultFrequencyPenalty,
				PresencePenalty:  DefaultPresencePenalty,
			},
		},
		Agent: AgentConfig{
			RequireConfirmation:  true,
			RestrictWritesToRoot: true,
			MaxSearchFiles:       DefaultMaxSearchFiles,
			WritePlanJSON:        true,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Normalize lower-cases the platform and makes auto_commit imply auto_stage.
func (c Config) Normalize() Config {
	c.Model.Platform = strings.ToLower(strings.TrimSpace(c.Model.Platform))
	if c.Git.AutoCommit {
		c.Git.AutoStage = true
	}
	return c
}

// APIKey returns the credential used by the selected platform.
func (m ModelConfig) APIKey() string {
	switch m.Platform {
	case PlatformDeepSeek:
		if m.UseLightning {
			return m.LightningAPIKey
		}
		return m.DeepSeekAPIKey
	case PlatformTogetherAI:
		return m.TogetherAPIKey
	case PlatformLightning:
		return m.LightningAPIKey
	case PlatformOpenAI:
		return m.OpenAIAPIKey
	case PlatformAnthropic:
		return m.AnthropicAPIKey
	case PlatformCohere:
		return m.CohereAPIKey
	default:
		return ""
	}
}

// WithAPIKey sets the credential of the selected platform.
func (m ModelConfig) WithAPIKey(key string) ModelConfig {
	switch m.Platform {
	case PlatformDeepSeek:
		if m.UseLightning {
			m.LightningAPIKey = key
		} else {
			m.DeepSeekAPIKey = key
		}
	case PlatformTogetherAI:
		m.TogetherAPIKey = key
	case PlatformLightning:
		m.LightningAPIKey = key
	case PlatformOpenAI:
		m.OpenAIAPIKey = key
	case PlatformAnthropic:
		m.AnthropicAPIKey = key
	case PlatformCohere:
		m.CohereAPIKey = key
	}
	return m
}

// Environment renders the settings a user needs as NAME=value pairs, in
// the variables the loader reads.
func (c Config) Environment() []string {
	m := c.Model
	pairs := [][2]string{{"MODEL_HOST_PLATFORM", m.Platform}}

	switch m.Platform {
	case PlatformDeepSeek:
		pairs = append(pairs,
			[2]string{"DEEPSEEK_MODEL_TYPE", m.ModelType},
			[2]string{"DEEPSEEK_USE_LIGHTNING", strconv.FormatBool(m.UseLightning)})
		if m.UseLightning {
			pairs = append(pairs,
				[2]string{"LIGHTNING_ENDPOINT_URL", m.LightningEndpointURL},
				[2]string{"LIGHTNING_API_KEY", m.LightningAPIKey})
		} else {
			pairs = append(pairs, [2]string{"DEEPSEEK_API_KEY", m.DeepSeekAPIKey})
		}
	case PlatformTogetherAI:
		pairs = append(pairs, [2]string{"TOGETHER_API_KEY", m.TogetherAPIKey})
	case PlatformLightning:
		pairs = append(pairs,
			[2]string{"LIGHTNING_ENDPOINT_URL", m.LightningEndpointURL},
			[2]string{"LIGHTNING_API_KEY", m.LightningAPIKey})
	case PlatformOpenAI:
		pairs = append(pairs, [2]string{"OPENAI_API_KEY", m.OpenAIAPIKey})
	case PlatformAnthropic:
		pairs = append(pairs, [2]string{"ANTHROPIC_API_KEY", m.AnthropicAPIKey})
	case PlatformCohere:
		pairs = append(pairs, [2]string{"COHERE_API_KEY", m.CohereAPIKey})
	case PlatformOllama:
		pairs = append(pairs, [2]string{"OLLAMA_HOST", m.OllamaHost})
	}

	pairs = append(pairs,
		[2]string{"DEEPCODER_MODEL_TEMPERATURE", strconv.FormatFloat(m.Parameters.Temperature, 'g', -1, 64)},
		[2]string{"DEEPCODER_MODEL_MAX_TOKENS", strconv.Itoa(m.Parameters.MaxTokens)},
		[2]string{"DEEPCODER_GIT_AUTO_STAGE", strconv.FormatBool(c.Git.AutoStage)},
		[2]string{"DEEPCODER_GIT_AUTO_COMMIT", strconv.FormatBool(c.Git.AutoCommit)},
	)

	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = fmt.Sprintf("%s=%s", p[0], p[1])
	}
	return out
}

// YAML renders the configuration with credentials masked.
func (c Config) YAML() (string, error) {
	masked := c
	masked.Model.DeepSeekAPIKey = mask(c.Model.DeepSeekAPIKey)
	masked.Model.LightningAPIKey = mask(c.Model.LightningAPIKey)
	masked.Model.TogetherAPIKey = mask(c.Model.TogetherAPIKey)
	masked.Model.OpenAIAPIKey = mask(c.Model.OpenAIAPIKey)
	masked.Model.AnthropicAPIKey = mask(c.Model.AnthropicAPIKey)
	masked.Model.CohereAPIKey = mask(c.Model.CohereAPIKey)

	b, err := yaml.Marshal(masked)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}
