package cli

import (
	"context"
	"io"
	"os"

	"github.com/aretw0/switchyard/internal/presentation/tui"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/spf13/pflag"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Dir      string
	TreeFile string
	// Path replays an explicit path ("build/clean") without the top menu.
	Path     string
	Debug    bool
	NoBanner bool
	// Flags are bound over the loaded configuration (session, plain, metrics-file, env).
	Flags *pflag.FlagSet

	Stdin  *os.File
	Stdout io.Writer
	Stderr io.Writer
}

func (o *RunOptions) setDefaults() {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Execute handles the 'run' command: it loads the configuration and the
// tree, asks for a command and runs it. The returned error is meant for
// ExitCode.
func Execute(ctx context.Context, opts RunOptions) error {
	opts.setDefaults()

	app, err := newApp(opts)
	if err != nil {
		return err
	}

	if app.showBanner {
		tui.PrintBanner(opts.Stdout, app.version)
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Stop()

	var runErr error
	if opts.Path != "" {
		runErr = app.dispatcher.RunPath(sigCtx, domain.ParsePath(opts.Path))
	} else {
		runErr = app.dispatcher.Run(sigCtx)
	}

	app.finish(runErr, sigCtx.Signal())
	return runErr
}
