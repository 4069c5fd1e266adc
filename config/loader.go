package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/IlliquidAsset/deepcoder/internal"
	"github.com/IlliquidAsset/deepcoder/internal/fsio"
)

const (
	UserConfigFile    = "config.yaml"
	ProjectConfigFile = ".deepcoder.yaml"
)

// EnvBindings maps config keys to the environment variables that set them.
var EnvBindings = map[string]string{
	"model.platform":               "MODEL_HOST_PLATFORM",
	"model.deepseek_api_key":       "DEEPSEEK_API_KEY",
	"model.model_type":             "DEEPSEEK_MODEL_TYPE",
	"model.use_lightning":          "DEEPSEEK_USE_LIGHTNING",
	"model.lightning_endpoint_url": "LIGHTNING_ENDPOINT_URL",
	"model.lightning_api_key":      "LIGHTNING_API_KEY",
	"model.together_api_key":       "TOGETHER_API_KEY",
	"model.openai_api_key":         "OPENAI_API_KEY",
	"model.anthropic_api_key":      "ANTHROPIC_API_KEY",
	"model.cohere_api_key":         "COHERE_API_KEY",
	"model.ollama_host":            "OLLAMA_HOST",
	"model.test_mode":              "DEEPCODER_TEST_MODE",
	"model.parameters.temperature": "DEEPCODER_MODEL_TEMPERATURE",
	"model.parameters.max_tokens":  "DEEPCODER_MODEL_MAX_TOKENS",
	"logging.level":                "DEEPCODER_LOG_LEVEL",
	"logging.file":                 "DEEPCODER_LOG_FILE",
	"git.auto_stage":               "DEEPCODER_GIT_AUTO_STAGE",
	"git.auto_commit":              "DEEPCODER_GIT_AUTO_COMMIT",
}

// FlagBindings maps command-line flag names to config keys.
var FlagBindings = map[string]string{
	"platform":    "model.platform",
	"model-type":  "model.model_type",
	"temperature": "model.parameters.temperature",
	"max-tokens":  "model.parameters.max_tokens",
	"log-level":   "logging.level",
	"stage":       "git.auto_stage",
	"commit":      "git.auto_commit",
}

// Loader layers defaults, the first config file found, the environment and
// command-line flags, later sources winning.
type Loader struct {
	paths  []string
	flags  *pflag.FlagSet
	reader fsio.Reader
	getenv func(string) string
}

type LoaderOption func(*Loader)

// WithPaths replaces the config file search list.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) { l.paths = paths }
}

func WithFlags(fs *pflag.FlagSet) LoaderOption {
	return func(l *Loader) { l.flags = fs }
}

func WithReader(r fsio.Reader) LoaderOption {
	return func(l *Loader) { l.reader = r }
}

func WithGetenv(fn func(string) string) LoaderOption {
	return func(l *Loader) { l.getenv = fn }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:  DefaultPaths(),
		reader: fsio.NewRealReader(),
		getenv: os.Getenv,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// DefaultPaths returns the user config file followed by the project one.
func DefaultPaths() []string {
	var paths []string
	if p, err := UserConfigPath(); err == nil {
		paths = append(paths, p)
	}
	return append(paths, ProjectConfigFile)
}

func UserConfigPath() (string, error) {
	home, err := internal.GetConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, UserConfigFile), nil
}

// FindFile returns the first config file on the search list that exists.
func (l *Loader) FindFile() (string, bool) {
	for _, p := range l.paths {
		if info, err := l.reader.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// FirstRun reports whether no config file exists and the environment does
// not carry a usable set of credentials.
func (l *Loader) FirstRun() bool {
	if _, found := l.FindFile(); found {
		return false
	}
	for _, env := range []string{"DEEPSEEK_API_KEY", "TOGETHER_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "COHERE_API_KEY", "OLLAMA_HOST"} {
		if l.getenv(env) != "" {
			return false
		}
	}
	return l.getenv("LIGHTNING_ENDPOINT_URL") == "" || l.getenv("LIGHTNING_API_KEY") == ""
}

func (l *Loader) Load() (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Defaults())

	file, found := l.FindFile()
	if found {
		raw, err := l.reader.ReadFile(file)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		if err := v.ReadConfig(strings.NewReader(string(raw))); err != nil {
			return Config{}, &ConfigurationError{Msg: fmt.Sprintf("Invalid config file %s: %v", file, err)}
		}
	}

	for key, env := range EnvBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	if l.flags != nil {
		for name, key := range FlagBindings {
			if f := l.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		flexibleBoolHook,
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, &ConfigurationError{Msg: fmt.Sprintf("Invalid configuration: %v", err)}
	}
	cfg.File = file
	cfg = cfg.Normalize()

	if cfg.Model.APIKeyFile != "" && cfg.Model.APIKey() == "" {
		key, err := ReadAPIKeyFile(cfg.Model.APIKeyFile)
		if err != nil {
			return Config{}, &ConfigurationError{Msg: err.Error()}
		}
		cfg.Model = cfg.Model.WithAPIKey(key)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	m := d.Model
	v.SetDefault("model.platform", m.Platform)
	v.SetDefault("model.model_type", m.ModelType)
	v.SetDefault("model.model_name", m.ModelName)
	v.SetDefault("model.api_base", m.APIBase)
	v.SetDefault("model.deepseek_api_key", m.DeepSeekAPIKey)
	v.SetDefault("model.use_lightning", m.UseLightning)
	v.SetDefault("model.lightning_endpoint_url", m.LightningEndpointURL)
	v.SetDefault("model.lightning_api_key", m.LightningAPIKey)
	v.SetDefault("model.together_api_key", m.TogetherAPIKey)
	v.SetDefault("model.openai_api_key", m.OpenAIAPIKey)
	v.SetDefault("model.anthropic_api_key", m.AnthropicAPIKey)
	v.SetDefault("model.cohere_api_key", m.CohereAPIKey)
	v.SetDefault("model.ollama_host", m.OllamaHost)
	v.SetDefault("model.api_key_file", m.APIKeyFile)
	v.SetDefault("model.test_mode", m.TestMode)
	v.SetDefault("model.skip_tls_verify", m.SkipTLSVerify)
	v.SetDefault("model.timeout_seconds", m.TimeoutSeconds)
	v.SetDefault("model.parameters.temperature", m.Parameters.Temperature)
	v.SetDefault("model.parameters.max_tokens", m.Parameters.MaxTokens)
	v.SetDefault("model.parameters.top_p", m.Parameters.TopP)
	v.SetDefault("model.parameters.frequency_penalty", m.Parameters.FrequencyPenalty)
	v.SetDefault("model.parameters.presence_penalty", m.Parameters.PresencePenalty)
	v.SetDefault("model.parameters.stop", m.Parameters.Stop)

	v.SetDefault("agent.require_confirmation", d.Agent.RequireConfirmation)
	v.SetDefault("agent.restrict_writes_to_root", d.Agent.RestrictWritesToRoot)
	v.SetDefault("agent.max_search_files", d.Agent.MaxSearchFiles)
	v.SetDefault("agent.write_plan_json", d.Agent.WritePlanJSON)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.file", d.Logging.File)

	v.SetDefault("git.auto_stage", d.Git.AutoStage)
	v.SetDefault("git.auto_commit", d.Git.AutoCommit)
}

// ParseBool treats true, 1 and yes (any case) as true and everything else
// as false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func flexibleBoolHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return ParseBool(data.(string)), nil
}
