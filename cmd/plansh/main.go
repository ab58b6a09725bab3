package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/atinylittleshell/plansh/internal/appupdate"
	"github.com/atinylittleshell/plansh/internal/config"
	"github.com/atinylittleshell/plansh/internal/core"
	"github.com/atinylittleshell/plansh/internal/executor"
	"github.com/atinylittleshell/plansh/internal/filesystem"
	"github.com/atinylittleshell/plansh/internal/history"
	"github.com/atinylittleshell/plansh/internal/llm"
	"github.com/atinylittleshell/plansh/internal/plan"
	"github.com/atinylittleshell/plansh/internal/repl"
	"github.com/atinylittleshell/plansh/internal/repl/render"
	"github.com/atinylittleshell/plansh/internal/styles"
	"github.com/atinylittleshell/plansh/internal/sysinfo"
)

var BUILD_VERSION = "dev"

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `plansh - turn natural-language tasks into shell commands

USAGE:
  plansh

Describe a task at the prompt. Short tasks run directly as shell commands;
longer ones are broken into a step-by-step plan that you confirm, one
command at a time. Type "salir" to exit.

Configuration lives in ~/.plansh/config.yaml.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger, err := initializeLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("-------- new plansh session --------", zap.Any("args", os.Args))

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Warn("standard input is not a terminal")
	}

	// Check for updates in background
	appupdate.HandleSelfUpdate(
		BUILD_VERSION,
		logger,
		filesystem.DefaultFileSystem{},
		appupdate.DefaultUpdater{},
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("unhandled error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	shellExecutor, err := executor.NewShellExecutor(logger)
	if err != nil {
		return fmt.Errorf("failed to initialize shell executor: %w", err)
	}
	logger.Info("shell executor ready", zap.String("pwd", shellExecutor.Pwd()))

	store, err := history.NewStore(core.HistoryFile())
	if err != nil {
		// History persistence is a convenience; the session works without it.
		logger.Warn("failed to open task history store", zap.Error(err))
		store = nil
	}

	info := sysinfo.Probe(logger)

	client := llm.NewClient(llm.Options{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey(),
		Timeout: cfg.RequestTimeout(),
		Logger:  logger,
	})

	ledger := history.NewLedger()
	renderer := render.New(os.Stdout)

	orchestrator := repl.NewOrchestrator(repl.OrchestratorOptions{
		Runner:    shellExecutor,
		Plans:     plan.NewGenerator(client, info, logger),
		Completer: client,
		Ledger:    ledger,
		SysInfo:   info,
		Asker:     repl.NewStdinAsker(os.Stdin, os.Stdout),
		Renderer:  renderer,
		Logger:    logger,
	})

	renderer.RenderWelcome(BUILD_VERSION, cfg.Model)
	if latest := appupdate.ReadLatestVersion(filesystem.DefaultFileSystem{}); latest != "" && latest != BUILD_VERSION {
		renderer.RenderUpdateNotice(latest)
	}

	session := repl.New(repl.Options{
		Orchestrator: orchestrator,
		Store:        store,
		Prompt:       cfg.Prompt,
		Logger:       logger,
	})

	return session.Run(context.Background())
}

func loadConfig() (*config.Config, error) {
	loader := config.NewLoader(nil)
	result, err := loader.LoadFromFile(core.ConfigFile())
	if err != nil {
		return nil, err
	}
	for _, loadErr := range result.Errors {
		fmt.Fprintln(os.Stderr, styles.LOG(fmt.Sprintf("plansh: config: %v", loadErr)))
	}
	return result.Config, nil
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	// Logs only go to file to keep the interactive prompt clean.
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}
