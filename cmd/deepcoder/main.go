package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/IlliquidAsset/deepcoder/agent"
	"github.com/IlliquidAsset/deepcoder/cmd/deepcoder/utils"
	"github.com/IlliquidAsset/deepcoder/config"
	"github.com/IlliquidAsset/deepcoder/diff"
	"github.com/IlliquidAsset/deepcoder/files"
	"github.com/IlliquidAsset/deepcoder/git"
	"github.com/IlliquidAsset/deepcoder/internal"
	"github.com/IlliquidAsset/deepcoder/model"
	"github.com/IlliquidAsset/deepcoder/ui"
)

var (
	projectRoot string
	noConfirm   bool
	dryRun      bool
	runSetup    bool
	showConfig  bool
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "deepcoder [instruction]",
		Short: "DeepCoder - An agentic CLI for code modification",
		Long: "Give DeepCoder a natural language instruction and it finds the relevant files, " +
			"asks a code model for changes, shows the diff and applies it once you confirm.",
		Example:       `  deepcoder "Refactor the login function in auth.py"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	flags := rootCmd.Flags()
	flags.StringP("platform", "p", config.DefaultPlatform, "Model platform: deepseek, togetherai, lightningai, openai, anthropic, cohere or ollama")
	flags.String("model-type", config.DefaultModelType, "DeepSeek model type: coder-v3, v3-base or r1")
	flags.Float64P("temperature", "t", config.DefaultTemperature, "Temperature for model generation")
	flags.IntP("max-tokens", "m", config.DefaultMaxTokens, "Maximum tokens to generate")
	flags.StringP("log-level", "l", config.DefaultLogLevel, "Log level: DEBUG, INFO, WARNING, ERROR, CRITICAL")
	flags.StringVarP(&projectRoot, "root", "r", ".", "Project root directory")
	flags.BoolVar(&noConfirm, "no-confirm", false, "Skip confirmation before applying changes")
	flags.Bool("stage", false, "Stage changes in Git after applying")
	flags.Bool("commit", false, "Commit changes after applying (implies --stage)")
	flags.BoolVar(&dryRun, "dry-run", false, "Show the changes without writing them")
	flags.BoolVar(&runSetup, "setup", false, "Run the setup wizard")
	flags.BoolVar(&showConfig, "show-config", false, "Print the effective configuration")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	instruction := utils.Instruction(args)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return err
	}

	loader := config.NewLoader(config.WithFlags(cmd.Flags()))

	if utils.NeedsSetup(runSetup, loader.FirstRun(), instruction, interactive) {
		prompter := ui.NewReadlinePrompter()
		_, err := ui.NewWizard(prompter, out, config.NewStore(), ui.WithProjectDir(root)).Run()
		_ = prompter.Close()

		switch {
		case errors.Is(err, ui.ErrAborted) || errors.Is(err, io.EOF):
			fmt.Fprintln(out, "\nSetup wizard cancelled. Using default configuration if available.")
		case err != nil:
			fmt.Fprintf(out, "\nError during setup: %v\n", err)
		}
		if instruction == "" {
			return nil
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	if showConfig {
		rendered, err := cfg.YAML()
		if err != nil {
			return err
		}
		if cfg.File != "" {
			fmt.Fprintf(out, "# %s\n", cfg.File)
		}
		fmt.Fprint(out, rendered)
		if instruction == "" {
			return nil
		}
	}

	if instruction == "" {
		fmt.Fprintln(out, "\nPlease provide an instruction for DeepCoder.")
		fmt.Fprintln(out, `Example: deepcoder "Refactor the login function in auth.py"`)
		fmt.Fprintln(out, "\nFor more options, run: deepcoder --help")
		return nil
	}

	if err := config.Validate(cfg, true); err != nil {
		return err
	}

	zapLogger, err := internal.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := zapLogger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return execute(ctx, out, cfg, root, instruction, logger)
}

func execute(ctx context.Context, out io.Writer, cfg config.Config, root, instruction string, logger *zap.SugaredLogger) error {
	gitClient := git.NewClient(root, git.NewExecRunner(), git.WithLogger(logger))
	isRepo := gitClient.IsRepo(ctx)
	if isRepo {
		logger.Infof("Project at %s is a Git repository", root)
	}
	gitOpts, warn := utils.GitOptions(cfg.Git, isRepo)
	if warn {
		logger.Warn("Project is not a Git repository, ignoring --stage and --commit flags")
	}

	logger.Infof("Initializing model (platform: %s)...", cfg.Model.Platform)
	m, err := model.New(cfg.Model, model.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		fmt.Fprintln(out, "\nPlease run the setup wizard to configure DeepCoder:")
		fmt.Fprintln(out, "  deepcoder --setup")
		return err
	}
	logger.Debugw("model ready", "info", m.Info())

	fileManager, err := files.New(root,
		files.WithMaxSearchFiles(cfg.Agent.MaxSearchFiles),
		files.WithLogger(logger))
	if err != nil {
		return err
	}

	runID := internal.NewRunID()
	logs, err := agent.NewLogs(runID)
	if err != nil {
		return fmt.Errorf("failed to open run logs: %w", err)
	}
	defer logs.Close()

	prompter := ui.NewReadlinePrompter()
	defer func() { _ = prompter.Close() }()
	console := ui.NewConsole(out, prompter,
		ui.WithAutoConfirm(noConfirm),
		ui.WithColor(utils.ColorEnabled(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv)),
		ui.WithLogger(logger))

	tools := agent.Tools{
		Files:     fileManager,
		Model:     m,
		Differ:    diff.New(),
		Git:       gitClient,
		Presenter: console,
	}
	agentCfg := agent.Config{
		WorkDir:             root,
		DryRun:              dryRun,
		RequireConfirmation: cfg.Agent.RequireConfirmation,
	}
	policy := agent.NewDefaultPolicy(agent.PolicyLimits{RestrictWritesToWorkDir: cfg.Agent.RestrictWritesToRoot})
	executor := agent.NewDefaultExecutor(tools, agent.NewRealClock(), policy, agentCfg,
		agent.WithExecutorLogger(logs.DebugLogger))

	planLogs := *logs
	if !cfg.Agent.WritePlanJSON {
		planLogs.Dir = ""
	}
	planner := agent.NewLoggingPlanner(agent.NewDefaultPlanner(gitOpts), &planLogs)

	a, err := agent.New(agent.Deps{
		Clock:    agent.NewRealClock(),
		Planner:  planner,
		Executor: executor,
		RunID:    func() string { return runID },
	},
		agent.WithHumanLogger(logs.HumanLogger, logs.SyncHuman),
		agent.WithDebugLogger(logs.DebugLogger, logs.SyncDebug),
	)
	if err != nil {
		return err
	}

	report := a.Run(ctx, instruction)

	for _, path := range report.Applied {
		fmt.Fprintf(out, "✓ Updated %s\n", path)
	}
	if report.CommitHash != "" {
		fmt.Fprintf(out, "✓ Committed changes: %s\n", utils.ShortHash(report.CommitHash))
	}
	fmt.Fprintf(out, "\n%s", report.Summary())
	logger.Debugf("run %s logs in %s", runID, logs.Dir)

	if !report.Succeeded() {
		return errors.New(report.Error)
	}
	return nil
}
