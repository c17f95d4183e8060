package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/switchyard"
	"github.com/aretw0/switchyard/internal/adapters/file"
	"github.com/aretw0/switchyard/internal/config"
	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/internal/presentation/tui"
	"github.com/aretw0/switchyard/pkg/adapters/process"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/observability"
	"github.com/aretw0/switchyard/pkg/tree"
)

// app is one fully wired invocation of the run command.
type app struct {
	opts       RunOptions
	cfg        config.Config
	logger     *slog.Logger
	runID      string
	metrics    *observability.Metrics
	dispatcher *switchyard.Dispatcher
	showBanner bool
	version    string
}

// newApp loads configuration and tree and assembles the dispatcher with
// standard CLI conventions.
func newApp(opts RunOptions) (*app, error) {
	cfg, err := config.Load(opts.Dir, opts.Flags)
	if err != nil {
		return nil, err
	}

	treeFile, err := ResolveTreeFile(opts.Dir, opts.TreeFile)
	if err != nil {
		return nil, err
	}
	root, err := tree.Load(treeFile)
	if err != nil {
		return nil, err
	}
	name := tree.NameFromPath(treeFile)

	logger, runID := logging.WithRunID(createLogger(opts.Debug))
	logger = logger.With("tree", name)

	injector, err := process.NewInjector(cfg.Injection)
	if err != nil {
		return nil, fmt.Errorf("invalid injection config: %w", err)
	}

	interactive := !cfg.UI.Plain && isTerminal(opts.Stdin)

	runnerOpts := []process.RunnerOption{
		process.WithInjector(injector),
		process.WithBaseDir(opts.Dir),
		process.WithIO(opts.Stdin, opts.Stdout, opts.Stderr),
		process.WithBanner(tui.StageBanner(opts.Stdout)),
		process.WithLogger(logger),
	}
	if clearsScreen(cfg, opts.Stdout) {
		runnerOpts = append(runnerOpts, process.WithClearScreen(tui.ScreenClearer(opts.Stdout)))
	}

	metrics := observability.NewMetrics()
	hooks := observability.MergeHooks(observability.LoggingHooks(logger), metrics.Hooks())

	dispatcher, err := switchyard.New(root,
		switchyard.WithStore(file.New(cfg.SessionFile(name), file.WithLogger(logger))),
		switchyard.WithPrompter(tui.NewPrompter(opts.Stdin, opts.Stdout, cfg.UI.Plain)),
		switchyard.WithRunner(process.NewRunner(runnerOpts...)),
		switchyard.WithPasscode(cfg.Escalation.Passcode),
		switchyard.WithBroadcastFlag(cfg.Escalation.Flag),
		switchyard.WithEnvironment(cfg.TargetEnvironment()),
		switchyard.WithLifecycleHooks(hooks),
		switchyard.WithLogger(logger),
		switchyard.WithOutput(opts.Stdout),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("ready", "file", treeFile, "session", cfg.SessionFile(name), "injection", cfg.Injection.Mode)

	return &app{
		opts:       opts,
		cfg:        cfg,
		logger:     logger,
		runID:      runID,
		metrics:    metrics,
		dispatcher: dispatcher,
		showBanner: cfg.UI.Banner && !opts.NoBanner && interactive,
		version:    switchyard.Version,
	}, nil
}

// finish reports the outcome and flushes metrics.
func (a *app) finish(err error, sig os.Signal) {
	switch {
	case err == nil:
		a.logger.Info("completed")
	case errors.Is(err, domain.ErrCancelled), sig != nil:
		tui.PrintSystemMessage(a.opts.Stdout, "Cancelled.")
		a.logger.Info("cancelled", "signal", sig)
	case errors.Is(err, domain.ErrAborted):
		// The executor already printed why.
	default:
		a.logger.Error("failed", "err", err)
	}

	if a.cfg.Metrics.File == "" {
		return
	}
	if werr := a.metrics.WriteTextfile(a.cfg.Metrics.File); werr != nil {
		a.logger.Warn("metrics not written", "file", a.cfg.Metrics.File, "err", werr)
		return
	}
	a.logger.Debug("metrics written", "file", a.cfg.Metrics.File, "run_id", a.runID)
}

func isTerminal(f *os.File) bool {
	return f != nil && tui.IsTerminal(f)
}

// clearsScreen reports whether stages start on a cleared terminal. Output
// that is not a terminal (a file, a pipe, a buffer) is never cleared.
func clearsScreen(cfg config.Config, stdout io.Writer) bool {
	if !cfg.UI.ClearScreen {
		return false
	}
	f, ok := stdout.(*os.File)
	return ok && isTerminal(f)
}
