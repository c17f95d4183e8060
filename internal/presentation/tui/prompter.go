package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// NewPrompter picks the interactive Bubble Tea prompter when in is a
// terminal and plain is false, and the line-based prompter otherwise.
func NewPrompter(in *os.File, out io.Writer, plain bool) ports.Prompter {
	if !plain && in != nil && term.IsTerminal(int(in.Fd())) {
		return &Prompter{in: in, out: out}
	}
	if in == nil {
		return NewLinePrompter(os.Stdin, out)
	}
	return NewLinePrompter(in, out)
}

// Prompter asks through small Bubble Tea programs on a terminal.
type Prompter struct {
	in  *os.File
	out io.Writer
}

var _ ports.Prompter = (*Prompter)(nil)

// NewTerminalPrompter returns a Prompter bound to the given terminal.
func NewTerminalPrompter(in *os.File, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: nothing to select for %q", domain.ErrInvalidTree, title)
	}
	final, err := p.run(ctx, newSelectModel(title, options))
	if err != nil {
		return "", err
	}
	choice, ok := final.(selectModel).Choice()
	if !ok {
		return "", domain.ErrCancelled
	}
	return choice, nil
}

func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(question, def))
	if err != nil {
		return false, err
	}
	answer, ok := final.(confirmModel).Result()
	if !ok {
		return false, domain.ErrCancelled
	}
	return answer, nil
}

// Secret reads a masked line from the terminal. The terminal state is
// restored if ctx is cancelled while waiting.
func (p *Prompter) Secret(ctx context.Context, prompt string) (string, error) {
	fd := int(p.in.Fd())
	state, err := term.GetState(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read terminal state: %w", err)
	}

	fmt.Fprintf(p.out, "? %s ", prompt)

	type result struct {
		value []byte
		err   error
	}
	done := make(chan result, 1)
	go func() {
		b, err := term.ReadPassword(fd)
		done <- result{b, err}
	}()

	select {
	case <-ctx.Done():
		_ = term.Restore(fd, state)
		fmt.Fprintln(p.out)
		return "", domain.ErrCancelled
	case r := <-done:
		fmt.Fprintln(p.out)
		if r.err != nil {
			if errors.Is(r.err, io.EOF) {
				return "", domain.ErrCancelled
			}
			return "", fmt.Errorf("failed to read secret: %w", r.err)
		}
		return SanitizeInput(strings.TrimSpace(string(r.value)))
	}
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return nil, domain.ErrCancelled
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// LinePrompter asks through plain numbered lines. It serves pipes, CI logs
// and terminals that cannot host a full-screen program.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ ports.Prompter = (*LinePrompter)(nil)

// NewLinePrompter creates a LinePrompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Select prints the options numbered from 1. The answer may be the number
// or the exact label; an empty line or end of input cancels.
func (p *LinePrompter) Select(ctx context.Context, title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%w: nothing to select for %q", domain.ErrInvalidTree, title)
	}

	fmt.Fprintf(p.out, "? %s\n", title)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if line == "" {
			return "", domain.ErrCancelled
		}
		for _, opt := range options {
			if opt == line {
				return opt, nil
			}
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q. Enter a number between 1 and %d.\n", line, len(options))
	}
}

func (p *LinePrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "? %s %s ", question, hint)
		line, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Secret reads a line as is; input is not masked outside a terminal.
func (p *LinePrompter) Secret(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "? %s ", prompt)
	return p.readLine(ctx)
}

// readLine returns the next trimmed, sanitized line. End of input maps to
// domain.ErrCancelled.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.ErrCancelled
	}

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			fmt.Fprintln(p.out)
			return "", domain.ErrCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
	if ctx.Err() != nil {
		return "", domain.ErrCancelled
	}
	return SanitizeInput(strings.TrimSpace(line))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
