package runtime

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
)

const (
	// DefaultPasscode is the shared secret asked before a broadcast when none is configured.
	DefaultPasscode = "13489"
	// DefaultEnvironment names the target in the confirmation question.
	DefaultEnvironment = "localhost"
	// DefaultLabel labels a simple leaf reached through an empty path.
	DefaultLabel = "command"
)

const (
	msgDryRunFailed   = "Dry-run failed with exit code %d. Aborting."
	msgConfirm        = "Dry-run succeeded. Proceed to BROADCAST for '%s' on %s?"
	msgUserAborted    = "Execution aborted by user."
	msgPasscodePrompt = "Enter passcode to proceed:"
	msgBadPasscode    = "Invalid passcode. Execution aborted."
)

// Abort reasons reported through OnAbort.
const (
	ReasonDeclined  = "declined"
	ReasonCancelled = "cancelled"
	ReasonPasscode  = "passcode"
)

// Executor runs a resolved leaf, escalating through dry-run, confirmation
// and passcode before the broadcast when the leaf asks for it.
type Executor struct {
	runner      ports.ProcessRunner
	prompter    ports.Prompter
	passcode    string
	flag        string
	environment string
	hooks       domain.LifecycleHooks
	out         io.Writer
	logger      *slog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPasscode sets the secret required before a broadcast.
func WithPasscode(passcode string) ExecutorOption {
	return func(e *Executor) {
		e.passcode = passcode
	}
}

// WithBroadcastFlag sets the flag removed from the command for the dry-run.
func WithBroadcastFlag(flag string) ExecutorOption {
	return func(e *Executor) {
		if flag != "" {
			e.flag = flag
		}
	}
}

// WithEnvironment names the broadcast target in the confirmation question.
func WithEnvironment(env string) ExecutorOption {
	return func(e *Executor) {
		if env != "" {
			e.environment = env
		}
	}
}

// WithLifecycleHooks registers callbacks for stage events.
func WithLifecycleHooks(hooks domain.LifecycleHooks) ExecutorOption {
	return func(e *Executor) {
		e.hooks = hooks
	}
}

// WithOutput sets where user-facing messages are printed.
func WithOutput(w io.Writer) ExecutorOption {
	return func(e *Executor) {
		if w != nil {
			e.out = w
		}
	}
}

// WithExecutorLogger sets the logger.
func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an Executor.
func NewExecutor(runner ports.ProcessRunner, prompter ports.Prompter, opts ...ExecutorOption) *Executor {
	e := &Executor{
		runner:      runner,
		prompter:    prompter,
		passcode:    DefaultPasscode,
		flag:        domain.DefaultBroadcastFlag,
		environment: DefaultEnvironment,
		out:         os.Stdout,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs leaf. A non-zero exit becomes a *domain.ExitError; a declined
// confirmation or a wrong passcode returns domain.ErrAborted.
func (e *Executor) Execute(ctx context.Context, leaf *domain.Leaf, path domain.Path) error {
	if leaf == nil {
		return fmt.Errorf("%w: no leaf to execute", domain.ErrInvalidTree)
	}
	label := path.Last(DefaultLabel)

	if !leaf.Escalate {
		return e.stage(ctx, domain.StageRun, label, leaf.Command)
	}

	// Dry-run: the irreversible flag is never passed here.
	if err := e.stage(ctx, domain.StageDryRun, string(domain.StageDryRun), leaf.Rehearsal(e.flag)); err != nil {
		var exitErr *domain.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(e.out, msgDryRunFailed+"\n", exitErr.Code)
		}
		return err
	}

	// Confirm
	ok, err := e.prompter.Confirm(ctx, fmt.Sprintf(msgConfirm, label, e.environment), false)
	if err != nil && !errors.Is(err, domain.ErrCancelled) {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		reason := ReasonDeclined
		if err != nil {
			reason = ReasonCancelled
		}
		fmt.Fprintln(e.out, msgUserAborted)
		e.emitAbort(ctx, domain.StageConfirm, reason)
		return domain.ErrAborted
	}

	// Authenticate
	secret, err := e.prompter.Secret(ctx, msgPasscodePrompt)
	if err != nil && !errors.Is(err, domain.ErrCancelled) {
		return fmt.Errorf("passcode prompt failed: %w", err)
	}
	if err != nil || subtle.ConstantTimeCompare([]byte(secret), []byte(e.passcode)) != 1 {
		fmt.Fprintln(e.out, msgBadPasscode)
		e.emitAbort(ctx, domain.StageAuth, ReasonPasscode)
		return domain.ErrAborted
	}

	return e.stage(ctx, domain.StageBroadcast, string(domain.StageBroadcast), leaf.Command)
}

// stage runs one command and converts its status into an error.
func (e *Executor) stage(ctx context.Context, stage domain.Stage, label, command string) error {
	event := &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageStart},
		Stage:     stage,
		Label:     label,
		Command:   command,
	}
	if e.hooks.OnStageStart != nil {
		e.hooks.OnStageStart(ctx, event)
	}
	e.logger.Debug("stage start", "stage", stage, "label", label)

	start := time.Now()
	code, err := e.runner.Run(ctx, label, command)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", stage, err)
	}

	end := *event
	end.Timestamp = time.Now()
	end.Type = domain.EventStageEnd
	end.ExitCode = code
	end.Duration = time.Since(start)
	if e.hooks.OnStageEnd != nil {
		e.hooks.OnStageEnd(ctx, &end)
	}
	e.logger.Debug("stage end", "stage", stage, "exit_code", code, "duration", end.Duration)

	if code != 0 {
		return &domain.ExitError{Stage: string(stage), Code: code}
	}
	return nil
}

func (e *Executor) emitAbort(ctx context.Context, stage domain.Stage, reason string) {
	e.logger.Debug("aborted", "stage", stage, "reason", reason)
	if e.hooks.OnAbort == nil {
		return
	}
	e.hooks.OnAbort(ctx, &domain.AbortEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAbort},
		Stage:     stage,
		Reason:    reason,
	})
}
