package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aretw0/switchyard/internal/logging"
)

// DefaultShell interprets the (wrapped) command line.
const DefaultShell = "sh"

// BannerFunc announces a stage before its command runs.
type BannerFunc func(label, invocation string)

// Runner implements ports.ProcessRunner by executing shell commands
// synchronously with the caller's standard streams.
type Runner struct {
	injector Injector
	shell    string
	baseDir  string
	env      []string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	banner      BannerFunc
	clearScreen func()
	logger      *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithInjector sets the secret-injection wrapper applied to every command.
func WithInjector(injector Injector) RunnerOption {
	return func(r *Runner) {
		r.injector = injector
	}
}

// WithShell sets the shell used to interpret the wrapped command.
func WithShell(shell string) RunnerOption {
	return func(r *Runner) {
		r.shell = shell
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithIO replaces the inherited standard streams (used by tests).
func WithIO(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithBanner sets the stage announcement.
func WithBanner(banner BannerFunc) RunnerOption {
	return func(r *Runner) {
		r.banner = banner
	}
}

// WithClearScreen clears the terminal before each stage.
func WithClearScreen(clear func()) RunnerOption {
	return func(r *Runner) {
		r.clearScreen = clear
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		injector: NopInjector{},
		shell:    DefaultShell,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.banner == nil {
		r.banner = PlainBanner(r.stdout)
	}
	return r
}

// PlainBanner prints "=== LABEL ===" followed by the invocation.
func PlainBanner(w io.Writer) BannerFunc {
	return func(label, invocation string) {
		fmt.Fprintf(w, "\n=== %s ===\n%s\n\n", strings.ToUpper(label), invocation)
	}
}

// Wrap applies the injection wrapper without running anything.
func (r *Runner) Wrap(command string) string {
	return r.injector.Wrap(command)
}

// Run executes command and returns its exit status.
// A non-zero status is returned as data; err is set only when the process
// could not be started.
func (r *Runner) Run(ctx context.Context, label string, command string) (int, error) {
	wrapped := r.injector.Wrap(command)

	if r.clearScreen != nil {
		r.clearScreen()
	}
	r.banner(label, wrapped)

	cmd := exec.CommandContext(ctx, r.shell, "-c", wrapped)
	cmd.Dir = r.baseDir
	cmd.Env = append(cmd.Environ(), r.env...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug("process start", "label", label, "shell", r.shell)
	err := cmd.Run()
	if err == nil {
		r.logger.Debug("process exit", "label", label, "code", 0)
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Killed by a signal; report a generic failure.
			code = 1
		}
		r.logger.Debug("process exit", "label", label, "code", code)
		return code, nil
	}

	return -1, fmt.Errorf("failed to start %s: %w", label, err)
}
