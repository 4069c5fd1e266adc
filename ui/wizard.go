package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/IlliquidAsset/deepcoder/config"
	"github.com/IlliquidAsset/deepcoder/internal/fsio"
)

const (
	WizardTitle              = "DeepCoder Setup Wizard"
	DefaultLightningEndpoint = "https://api.lightning.ai/v1"
	DefaultOllamaHost        = "http://localhost:11434"
	EnvFile                  = ".env"
	GitIgnoreFile            = ".gitignore"

	SaveUser        = "user"
	SaveProject     = "project"
	SaveEnvironment = "environment"
)

var saveLocations = []string{SaveUser, SaveProject, SaveEnvironment}

// Wizard walks the user through creating a configuration and saves it.
type Wizard struct {
	ask        asker
	out        io.Writer
	store      *config.Store
	writer     fsio.Writer
	userPath   string
	projectDir string
}

type WizardOption func(*Wizard)

func WithUserConfigPath(path string) WizardOption {
	return func(w *Wizard) { w.userPath = path }
}

func WithProjectDir(dir string) WizardOption {
	return func(w *Wizard) { w.projectDir = dir }
}

// WithEnvWriter sets the writer used for the .env file.
func WithEnvWriter(fw fsio.Writer) WizardOption {
	return func(w *Wizard) { w.writer = fw }
}

func NewWizard(p Prompter, out io.Writer, store *config.Store, opts ...WizardOption) *Wizard {
	w := &Wizard{
		ask:        asker{p: p, out: out},
		out:        out,
		store:      store,
		writer:     fsio.NewRealWriter(),
		projectDir: ".",
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run asks every question, saves the answers and returns the resulting
// configuration.
func (w *Wizard) Run() (config.Config, error) {
	fmt.Fprintf(w.out, "\n%s\n%s\n\n", WizardTitle, strings.Repeat("=", len(WizardTitle)))
	fmt.Fprintln(w.out, "This wizard will help you configure DeepCoder.")

	cfg := config.Defaults()

	platform, err := w.ask.choose("Select the model platform", config.Platforms, config.DefaultPlatform)
	if err != nil {
		return config.Config{}, err
	}
	cfg.Model.Platform = platform

	if cfg.Model, err = w.credentials(cfg.Model); err != nil {
		return config.Config{}, err
	}

	advanced, err := w.ask.confirm("Configure advanced model parameters?", false)
	if err != nil {
		return config.Config{}, err
	}
	if advanced {
		if cfg.Model.Parameters, err = w.parameters(cfg.Model.Parameters); err != nil {
			return config.Config{}, err
		}
	}

	if cfg.Git, err = w.git(); err != nil {
		return config.Config{}, err
	}

	cfg = cfg.Normalize()

	location, err := w.ask.choose("Where should the configuration be saved?", saveLocations, SaveUser)
	if err != nil {
		return config.Config{}, err
	}
	if err := w.save(location, &cfg); err != nil {
		return config.Config{}, err
	}

	fmt.Fprintln(w.out, "\nSetup complete. Run deepcoder \"<instruction>\" to get started.")
	return cfg, nil
}

func (w *Wizard) credentials(m config.ModelConfig) (config.ModelConfig, error) {
	var err error

	switch m.Platform {
	case config.PlatformDeepSeek:
		if m.ModelType, err = w.ask.choose("Select the DeepSeek model type", config.ModelTypes, config.DefaultModelType); err != nil {
			return m, err
		}
		if m.UseLightning, err = w.ask.confirm("Use Lightning AI to host DeepSeek?", false); err != nil {
			return m, err
		}
		if m.UseLightning {
			return w.lightning(m)
		}
		m.DeepSeekAPIKey, err = w.ask.secret("DeepSeek API key")
	case config.PlatformLightning:
		return w.lightning(m)
	case config.PlatformTogetherAI:
		m.TogetherAPIKey, err = w.ask.secret("Together AI API key")
	case config.PlatformOpenAI:
		m.OpenAIAPIKey, err = w.ask.secret("OpenAI API key")
	case config.PlatformAnthropic:
		m.AnthropicAPIKey, err = w.ask.secret("Anthropic API key")
	case config.PlatformCohere:
		m.CohereAPIKey, err = w.ask.secret("Cohere API key")
	case config.PlatformOllama:
		m.OllamaHost, err = w.ask.text("Ollama host", DefaultOllamaHost)
	}
	return m, err
}

func (w *Wizard) lightning(m config.ModelConfig) (config.ModelConfig, error) {
	var err error
	if m.LightningEndpointURL, err = w.ask.text("Lightning AI endpoint URL", DefaultLightningEndpoint); err != nil {
		return m, err
	}
	m.LightningAPIKey, err = w.ask.secret("Lightning AI API key")
	return m, err
}

func (w *Wizard) parameters(p config.Parameters) (config.Parameters, error) {
	var err error
	if p.Temperature, err = w.bounded("Temperature (0.0-2.0)", p.Temperature, 0, 2); err != nil {
		return p, err
	}
	if p.MaxTokens, err = w.ask.integer("Max tokens", p.MaxTokens); err != nil {
		return p, err
	}
	p.TopP, err = w.bounded("Top P (0.0-1.0)", p.TopP, 0, 1)
	return p, err
}

func (w *Wizard) bounded(question string, def, min, max float64) (float64, error) {
	for {
		v, err := w.ask.float(question, def)
		if err != nil {
			return 0, err
		}
		if v >= min && v <= max {
			return v, nil
		}
		fmt.Fprintf(w.out, "Please enter a value between %g and %g\n", min, max)
	}
}

func (w *Wizard) git() (config.GitConfig, error) {
	var g config.GitConfig

	enabled, err := w.ask.confirm("Enable Git integration?", true)
	if err != nil || !enabled {
		return g, err
	}
	if g.AutoStage, err = w.ask.confirm("Automatically stage changes?", true); err != nil || !g.AutoStage {
		return g, err
	}
	g.AutoCommit, err = w.ask.confirm("Automatically commit changes?", false)
	return g, err
}

func (w *Wizard) save(location string, cfg *config.Config) error {
	switch location {
	case SaveProject:
		path := filepath.Join(w.projectDir, config.ProjectConfigFile)
		if err := w.store.Write(path, *cfg); err != nil {
			return err
		}
		cfg.File = path
		w.ignore(config.ProjectConfigFile, "DeepCoder configuration")
		fmt.Fprintf(w.out, "Configuration saved to %s\n", path)
	case SaveEnvironment:
		return w.saveEnvironment(*cfg)
	default:
		path := w.userPath
		if path == "" {
			var err error
			if path, err = config.UserConfigPath(); err != nil {
				return err
			}
		}
		if err := w.store.Write(path, *cfg); err != nil {
			return err
		}
		cfg.File = path
		fmt.Fprintf(w.out, "Configuration saved to %s\n", path)
	}
	return nil
}

func (w *Wizard) saveEnvironment(cfg config.Config) error {
	vars := cfg.Environment()

	fmt.Fprintln(w.out, "\nAdd the following lines to your shell profile:")
	for _, v := range vars {
		fmt.Fprintf(w.out, "export %s\n", v)
	}

	write, err := w.ask.confirm("Also write them to a .env file in the project directory?", false)
	if err != nil || !write {
		return err
	}

	path := filepath.Join(w.projectDir, EnvFile)
	content := strings.Join(vars, "\n") + "\n"
	if err := w.writer.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.ignore(EnvFile, "Environment variables")
	fmt.Fprintf(w.out, "Configuration saved to %s\n", path)
	return nil
}

func (w *Wizard) ignore(entry, comment string) {
	changed, err := w.store.EnsureIgnored(filepath.Join(w.projectDir, GitIgnoreFile), entry, comment)
	if err != nil {
		fmt.Fprintf(w.out, "Warning: could not update %s: %v\n", GitIgnoreFile, err)
		return
	}
	if changed {
		fmt.Fprintf(w.out, "Added %s to %s\n", entry, GitIgnoreFile)
	}
}
