package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/ports"
	"github.com/aretw0/switchyard/pkg/tree"
)

// RootTitle is the prompt title shown at the root of the tree.
const RootTitle = "Choose:"

// Navigator walks a command tree from the root to a leaf, replaying a cached
// path where it still matches and prompting everywhere else.
type Navigator struct {
	prompter ports.Prompter
	logger   *slog.Logger
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithNavigatorLogger sets the logger used for replay and divergence messages.
func WithNavigatorLogger(logger *slog.Logger) NavigatorOption {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// NewNavigator creates a Navigator that asks through prompter.
func NewNavigator(prompter ports.Prompter, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		prompter: prompter,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Traverse returns the leaf reached from root and the labels that led to it.
//
// Labels of cached are consumed in order while each one exists in the
// current branch. At the first label that does not, the rest of cached is
// discarded and every deeper level is prompted.
func (n *Navigator) Traverse(ctx context.Context, root *domain.Node, cached domain.Path) (*domain.Leaf, domain.Path, error) {
	cursor := cached.Clone()
	path := domain.Path{}
	node := root

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, domain.ErrCancelled
		}
		if node == nil {
			return nil, nil, fmt.Errorf("%w: %q: missing node", domain.ErrInvalidTree, path.String())
		}
		if node.IsLeaf() {
			if node.Leaf == nil {
				return nil, nil, fmt.Errorf("%w: %q: leaf without command", domain.ErrInvalidTree, path.String())
			}
			return node.Leaf, path, nil
		}

		labels := node.Labels()
		if len(labels) == 0 {
			return nil, nil, fmt.Errorf("%w: %q: empty branch", domain.ErrInvalidTree, n.where(path))
		}

		label, replayed, err := n.next(ctx, labels, path, &cursor)
		if err != nil {
			return nil, nil, err
		}

		child, ok := node.Child(label)
		if !ok {
			return nil, nil, fmt.Errorf("%w: prompt returned unknown label %q", domain.ErrInvalidPath, label)
		}
		if replayed {
			n.logger.Debug("replayed", "label", label, "depth", len(path))
		}
		path = append(path, label)
		node = child
	}
}

func (n *Navigator) next(ctx context.Context, labels []string, path domain.Path, cursor *domain.Path) (string, bool, error) {
	if len(*cursor) > 0 {
		want := (*cursor)[0]
		for _, l := range labels {
			if l == want {
				*cursor = (*cursor)[1:]
				return want, true, nil
			}
		}
		nearest, distance := tree.Nearest(labels, want)
		n.logger.Debug("cached path diverged",
			"label", want,
			"at", n.where(path),
			"nearest", nearest,
			"distance", distance,
		)
		*cursor = nil
	}

	choice, err := n.prompter.Select(ctx, n.title(path), labels)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) || ctx.Err() != nil {
			return "", false, domain.ErrCancelled
		}
		return "", false, fmt.Errorf("selection failed: %w", err)
	}
	if choice == "" {
		return "", false, domain.ErrCancelled
	}
	return choice, false, nil
}

func (n *Navigator) title(path domain.Path) string {
	if len(path) == 0 {
		return RootTitle
	}
	return fmt.Sprintf("%s %s", path.String(), RootTitle)
}

func (n *Navigator) where(path domain.Path) string {
	if len(path) == 0 {
		return "<root>"
	}
	return path.String()
}
