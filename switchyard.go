package switchyard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/internal/presentation/tui"
	"github.com/aretw0/switchyard/internal/runtime"
	"github.com/aretw0/switchyard/pkg/adapters/memory"
	"github.com/aretw0/switchyard/pkg/adapters/process"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
	"github.com/aretw0/switchyard/pkg/tree"
)

// Version is the current switchyard release.
const Version = "v0.3.0"

const (
	// TopTitle is the title of the first menu.
	TopTitle = "What do you want to do?"
	// StartNew is the top menu option that ignores the stored session.
	StartNew = "Start new selection"

	retryPrefix = "Retry last: "
)

// RetryOption returns the top menu label offering to replay path.
func RetryOption(path domain.Path) string {
	return retryPrefix + path.String()
}

// Dispatcher is the high-level entry point: it asks for a command in the
// tree, remembers the choice and runs it.
type Dispatcher struct {
	root     *domain.Node
	store    ports.SessionStore
	prompter ports.Prompter
	runner   ports.ProcessRunner

	passcode    *string
	flag        string
	environment string
	hooks       domain.LifecycleHooks
	out         io.Writer
	logger      *slog.Logger

	navigator *runtime.Navigator
	executor  *runtime.Executor
}

// Option defines a functional option for configuring the Dispatcher.
type Option func(*Dispatcher)

// WithStore sets where the last path is remembered (default: in memory).
func WithStore(store ports.SessionStore) Option {
	return func(d *Dispatcher) {
		d.store = store
	}
}

// WithPrompter sets how the user is asked (default: terminal or plain lines).
func WithPrompter(p ports.Prompter) Option {
	return func(d *Dispatcher) {
		d.prompter = p
	}
}

// WithRunner sets how commands are executed (default: a local shell).
func WithRunner(r ports.ProcessRunner) Option {
	return func(d *Dispatcher) {
		d.runner = r
	}
}

// WithPasscode sets the secret required before a broadcast.
func WithPasscode(passcode string) Option {
	return func(d *Dispatcher) {
		d.passcode = &passcode
	}
}

// WithBroadcastFlag sets the flag removed for the dry-run.
func WithBroadcastFlag(flag string) Option {
	return func(d *Dispatcher) {
		d.flag = flag
	}
}

// WithEnvironment names the broadcast target in the confirmation question.
func WithEnvironment(env string) Option {
	return func(d *Dispatcher) {
		d.environment = env
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks on the executor.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithOutput sets where the path block and messages are printed.
func WithOutput(w io.Writer) Option {
	return func(d *Dispatcher) {
		d.out = w
	}
}

// New validates root and builds a Dispatcher around it.
func New(root *domain.Node, opts ...Option) (*Dispatcher, error) {
	if err := tree.Validate(root); err != nil {
		return nil, err
	}

	d := &Dispatcher{root: root}
	for _, opt := range opts {
		opt(d)
	}

	if d.logger == nil {
		d.logger = logging.NewNop()
	}
	if d.out == nil {
		d.out = os.Stdout
	}
	if d.store == nil {
		d.store = memory.NewStore()
	}
	if d.prompter == nil {
		d.prompter = tui.NewPrompter(os.Stdin, d.out, false)
	}
	if d.runner == nil {
		d.runner = process.NewRunner(process.WithLogger(d.logger))
	}

	d.navigator = runtime.NewNavigator(d.prompter, runtime.WithNavigatorLogger(d.logger))

	execOpts := []runtime.ExecutorOption{
		runtime.WithBroadcastFlag(d.flag),
		runtime.WithEnvironment(d.environment),
		runtime.WithLifecycleHooks(d.hooks),
		runtime.WithOutput(d.out),
		runtime.WithExecutorLogger(d.logger),
	}
	if d.passcode != nil {
		execOpts = append(execOpts, runtime.WithPasscode(*d.passcode))
	}
	d.executor = runtime.NewExecutor(d.runner, d.prompter, execOpts...)

	return d, nil
}

// Run offers to retry the stored path or start over, then navigates,
// remembers and executes the chosen leaf.
func (d *Dispatcher) Run(ctx context.Context) error {
	last, ok, err := d.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	retry := ""
	options := []string{StartNew}
	if ok && len(last) > 0 {
		retry = RetryOption(last)
		options = []string{retry, StartNew}
	}

	choice, err := d.prompter.Select(ctx, TopTitle, options)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			return domain.ErrCancelled
		}
		return fmt.Errorf("selection failed: %w", err)
	}

	switch {
	case choice == "":
		return domain.ErrCancelled
	case choice == StartNew:
		return d.dispatch(ctx, nil)
	case retry != "" && choice == retry:
		d.logger.Debug("retrying last path", "path", last.String())
		return d.dispatch(ctx, last)
	default:
		return fmt.Errorf("%w: unknown menu choice %q", domain.ErrInvalidPath, choice)
	}
}

// RunPath replays path without the top menu. Levels where path no longer
// matches the tree are prompted.
func (d *Dispatcher) RunPath(ctx context.Context, path domain.Path) error {
	return d.dispatch(ctx, path)
}

func (d *Dispatcher) dispatch(ctx context.Context, cached domain.Path) error {
	leaf, path, err := d.navigator.Traverse(ctx, d.root, cached)
	if err != nil {
		return err
	}

	if err := d.store.Save(ctx, path); err != nil {
		return err
	}

	tui.PrintPath(d.out, path)
	d.logger.Info("dispatching", "path", path.String(), "escalate", leaf.Escalate)

	return d.executor.Execute(ctx, leaf, path)
}
