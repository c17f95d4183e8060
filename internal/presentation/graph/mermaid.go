package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/aretw0/switchyard/pkg/tree"
)

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	// Path is the last navigated path; its nodes are styled as visited and
	// its leaf as current.
	Path domain.Path
}

// GenerateMermaid produces a Mermaid flowchart of a command tree.
// It applies semantic styling:
// - Root: ((Circle))
// - Branch: [Rectangle]
// - Command: [[Subroutine]]
// - Command with dry-run escalation: {{Hexagon}}
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(root *domain.Node, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    root((\"root\"))\n")

	// Labels may hold any character, so IDs come from the position in the walk.
	ids := map[string]string{"": "root"}
	visited := []string{}
	current := ""

	_ = tree.Walk(root, func(path domain.Path, n *domain.Node) error {
		if len(path) == 0 || n == nil {
			return nil
		}
		id := fmt.Sprintf("n%d", len(ids))
		ids[key(path)] = id
		parent := ids[key(path[:len(path)-1])]

		label := escape(path.Last(""))
		opener, closer := "[", "]"
		if n.IsLeaf() {
			opener, closer = "[[", "]]"
			if n.Leaf.Escalate {
				opener, closer = "{{", "}}"
			}
			label = fmt.Sprintf("%s <br/> <code>%s</code>", label, escape(n.Leaf.Command))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)

		arrow := "-->"
		if n.IsLeaf() && n.Leaf.Escalate {
			arrow = "-. \"dry-run first\" .->"
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", parent, arrow, id)

		if overlay != nil && isPrefix(path, overlay.Path) {
			if len(path) == len(overlay.Path) {
				current = id
			} else {
				visited = append(visited, id)
			}
		}
		return nil
	})

	// Apply Overlay Styles
	if overlay != nil && len(overlay.Path) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    class root visited;\n")
		for _, id := range visited {
			fmt.Fprintf(&sb, "    class %s visited;\n", id)
		}
		// A stale session may point at a node that no longer exists.
		if current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", current)
		}
	}

	return sb.String()
}

func key(path domain.Path) string {
	return strings.Join(path, "\x00")
}

func isPrefix(prefix, path domain.Path) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
