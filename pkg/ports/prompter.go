package ports

import "context"

// Prompter is the interactive capability the dispatcher asks the user through.
// Every method returns domain.ErrCancelled when the user dismisses the prompt.
type Prompter interface {
	// Select presents options in order and returns the chosen one.
	Select(ctx context.Context, title string, options []string) (string, error)

	// Confirm asks a yes/no question; def is returned when the user just accepts.
	Confirm(ctx context.Context, question string, def bool) (bool, error)

	// Secret reads a masked value.
	Secret(ctx context.Context, prompt string) (string, error)
}
