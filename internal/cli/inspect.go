package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/switchyard/internal/adapters/file"
	"github.com/aretw0/switchyard/internal/config"
	"github.com/aretw0/switchyard/internal/presentation/graph"
	"github.com/aretw0/switchyard/internal/presentation/tui"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/tree"
	"github.com/spf13/pflag"
)

// Output formats of the tree command.
const (
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// Validate loads a tree and reports every problem found.
func Validate(w io.Writer, dir, treeFile string) error {
	path, err := ResolveTreeFile(dir, treeFile)
	if err != nil {
		return err
	}
	root, err := tree.Load(path)
	if err != nil {
		return err
	}
	if err := tree.Validate(root); err != nil {
		return err
	}

	s := tree.Inspect(root)
	fmt.Fprintln(w, "Tree is valid! ✅")
	fmt.Fprintf(w, "%d branches, %d commands (%d with dry-run escalation), depth %d\n",
		s.Branches, s.Leaves, s.Escalating, s.Depth)
	return nil
}

// TreeOptions configures the tree command.
type TreeOptions struct {
	Dir      string
	TreeFile string
	Format   string
	// Raw skips glamour rendering of markdown.
	Raw   bool
	Flags *pflag.FlagSet
}

// RenderTree prints a tree as markdown or Mermaid, with the stored session
// path highlighted.
func RenderTree(ctx context.Context, w io.Writer, opts TreeOptions) error {
	path, err := ResolveTreeFile(opts.Dir, opts.TreeFile)
	if err != nil {
		return err
	}
	root, err := tree.Load(path)
	if err != nil {
		return err
	}
	name := tree.NameFromPath(path)

	last := loadSession(ctx, opts.Dir, name, opts.Flags)

	switch strings.ToLower(opts.Format) {
	case "", FormatMarkdown:
		md := tui.RenderTreeMarkdown(name, root, last)
		if opts.Raw {
			fmt.Fprint(w, md)
			return nil
		}
		out, err := tui.NewRenderer()(md)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprint(w, out)
	case FormatMermaid:
		var overlay *graph.GraphOverlay
		if len(last) > 0 {
			overlay = &graph.GraphOverlay{Path: last}
		}
		fmt.Fprint(w, graph.GenerateMermaid(root, overlay))
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", opts.Format, FormatMarkdown, FormatMermaid)
	}
	return nil
}

// ShowSession prints the stored path of a tree and whether it still resolves.
func ShowSession(ctx context.Context, w io.Writer, dir, treeFile string, flags *pflag.FlagSet) error {
	path, err := ResolveTreeFile(dir, treeFile)
	if err != nil {
		return err
	}
	name := tree.NameFromPath(path)

	cfg, err := config.Load(dir, flags)
	if err != nil {
		return err
	}
	sessionFile := cfg.SessionFile(name)

	last, ok, err := file.New(sessionFile).Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(w, "No session recorded for %q (%s).\n", name, sessionFile)
		return nil
	}

	fmt.Fprintf(w, "Session: %s\n", sessionFile)
	tui.PrintPath(w, last)

	root, err := tree.Load(path)
	if err != nil {
		return err
	}
	if _, err := tree.Resolve(root, last); err != nil {
		if errors.Is(err, domain.ErrInvalidPath) {
			fmt.Fprintf(w, "The tree has changed since; a retry will prompt from %q.\n", divergence(root, last))
			return nil
		}
		return err
	}
	fmt.Fprintln(w, "A retry will run this command without prompting.")
	return nil
}

func loadSession(ctx context.Context, dir, name string, flags *pflag.FlagSet) domain.Path {
	cfg, err := config.Load(dir, flags)
	if err != nil {
		return nil
	}
	last, _, _ := file.New(cfg.SessionFile(name)).Load(ctx)
	return last
}

// divergence returns the deepest prefix of path that still exists in root.
func divergence(root *domain.Node, path domain.Path) string {
	node := root
	for i, label := range path {
		next, ok := node.Child(label)
		if !ok {
			if i == 0 {
				return "<root>"
			}
			return path[:i].String()
		}
		node = next
	}
	return path.String()
}

// ClearSession forgets the stored path of a tree.
func ClearSession(ctx context.Context, w io.Writer, dir, treeFile string, flags *pflag.FlagSet) error {
	path, err := ResolveTreeFile(dir, treeFile)
	if err != nil {
		return err
	}
	cfg, err := config.Load(dir, flags)
	if err != nil {
		return err
	}
	sessionFile := cfg.SessionFile(tree.NameFromPath(path))
	if err := file.New(sessionFile).Delete(ctx); err != nil {
		return err
	}
	fmt.Fprintf(w, "Session %s removed.\n", sessionFile)
	return nil
}
