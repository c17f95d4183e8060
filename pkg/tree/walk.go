package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/switchyard/pkg/domain"
)

// SkipBranch can be returned by a WalkFunc to skip the children of a branch.
var SkipBranch = errors.New("skip this branch")

// WalkFunc is called for every node, with the path that reaches it.
type WalkFunc func(path domain.Path, n *domain.Node) error

// Walk visits the tree depth-first in display order.
func Walk(root *domain.Node, fn WalkFunc) error {
	err := walk(nil, root, fn)
	if errors.Is(err, SkipBranch) {
		return nil
	}
	return err
}

func walk(path domain.Path, n *domain.Node, fn WalkFunc) error {
	if err := fn(path, n); err != nil {
		if errors.Is(err, SkipBranch) {
			return nil
		}
		return err
	}
	if n == nil || n.IsLeaf() {
		return nil
	}
	for _, c := range n.Children {
		if err := walk(append(path.Clone(), c.Label), c.Node, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the path of every leaf, in display order.
func Leaves(root *domain.Node) []domain.Path {
	var out []domain.Path
	_ = Walk(root, func(path domain.Path, n *domain.Node) error {
		if n.IsLeaf() {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// Resolve returns the leaf addressed by path.
func Resolve(root *domain.Node, path domain.Path) (*domain.Leaf, error) {
	node := root
	for i, label := range path {
		next, ok := node.Child(label)
		if !ok {
			return nil, fmt.Errorf("%w: %q not found under %q", domain.ErrInvalidPath, label, domain.Path(path[:i]).String())
		}
		node = next
	}
	if !node.IsLeaf() {
		return nil, fmt.Errorf("%w: %q is a branch", domain.ErrInvalidPath, path.String())
	}
	return node.Leaf, nil
}

// Nearest returns the label closest to want by edit distance, and that distance.
// It returns ("", -1) when labels is empty.
func Nearest(labels []string, want string) (string, int) {
	if len(labels) == 0 {
		return "", -1
	}
	best, bestDistance := "", math.MaxInt
	for _, l := range labels {
		if d := levenshtein.ComputeDistance(want, l); d < bestDistance {
			best, bestDistance = l, d
		}
	}
	return best, bestDistance
}
