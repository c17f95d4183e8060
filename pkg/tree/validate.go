package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/switchyard/pkg/domain"
)

// Validate checks a tree built in code (or mutated after loading) for the
// invariants the loader enforces: non-empty branches, unique sibling labels,
// non-empty leaf commands and no nil nodes.
// All problems are reported together.
func Validate(root *domain.Node) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", domain.ErrInvalidTree)
	}
	if root.IsLeaf() {
		return fmt.Errorf("%w: root must be a branch", domain.ErrInvalidTree)
	}

	var errs []error
	_ = Walk(root, func(path domain.Path, n *domain.Node) error {
		switch {
		case n == nil:
			errs = append(errs, treeError(path, "missing node"))
		case n.Kind == domain.KindLeaf:
			if n.Leaf == nil || strings.TrimSpace(n.Leaf.Command) == "" {
				errs = append(errs, treeError(path, "empty command"))
			}
			if len(n.Children) > 0 {
				errs = append(errs, treeError(path, "leaf has children"))
			}
		case n.Kind == domain.KindBranch:
			if len(n.Children) == 0 {
				errs = append(errs, treeError(path, "empty branch"))
			}
			seen := make(map[string]bool, len(n.Children))
			for _, c := range n.Children {
				if seen[c.Label] {
					errs = append(errs, treeError(path, fmt.Sprintf("duplicate label %q", c.Label)))
				}
				seen[c.Label] = true
			}
		default:
			errs = append(errs, treeError(path, fmt.Sprintf("unknown node kind %d", n.Kind)))
		}
		return nil
	})

	return errors.Join(errs...)
}

// Stats summarises a tree for reporting.
type Stats struct {
	Branches   int
	Leaves     int
	Escalating int
	Depth      int
}

// Inspect counts the nodes of a tree.
func Inspect(root *domain.Node) Stats {
	var s Stats
	_ = Walk(root, func(path domain.Path, n *domain.Node) error {
		if n == nil {
			return nil
		}
		if len(path) > s.Depth {
			s.Depth = len(path)
		}
		if n.IsLeaf() {
			s.Leaves++
			if n.Leaf != nil && n.Leaf.Escalate {
				s.Escalating++
			}
			return nil
		}
		s.Branches++
		return nil
	})
	return s
}
