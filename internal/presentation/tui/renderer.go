package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/tree"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RenderTreeMarkdown lists a command tree as nested markdown bullets.
// Leaves on the highlight path are marked as the last session.
func RenderTreeMarkdown(title string, root *domain.Node, highlight domain.Path) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	_ = tree.Walk(root, func(path domain.Path, n *domain.Node) error {
		if len(path) == 0 || n == nil {
			return nil
		}
		indent := strings.Repeat("  ", len(path)-1)
		label := path.Last("")

		if !n.IsLeaf() {
			fmt.Fprintf(&sb, "%s- **%s**\n", indent, label)
			return nil
		}

		marker := ""
		if n.Leaf.Escalate {
			marker = " _(dry-run first)_"
		}
		if path.Equal(highlight) {
			marker += " ← last session"
		}
		fmt.Fprintf(&sb, "%s- %s%s: `%s`\n", indent, label, marker, strings.ReplaceAll(n.Leaf.Command, "`", "'"))
		return nil
	})

	s := tree.Inspect(root)
	fmt.Fprintf(&sb, "\n%d commands, %d require dry-run escalation.\n", s.Leaves, s.Escalating)
	return sb.String()
}
