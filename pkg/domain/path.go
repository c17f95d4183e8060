package domain

import "strings"

// Path is the ordered sequence of labels from the tree root to a leaf.
type Path []string

// BreadcrumbSeparator joins labels for display.
const BreadcrumbSeparator = " / "

// String renders the path as a breadcrumb ("build / clean").
func (p Path) String() string {
	return strings.Join(p, BreadcrumbSeparator)
}

// Last returns the final label, or fallback when the path is empty.
func (p Path) Last(fallback string) string {
	if len(p) == 0 {
		return fallback
	}
	return p[len(p)-1]
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Equal reports whether both paths hold the same labels in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// ParsePath splits a slash separated path ("build/clean") into labels.
// Surrounding whitespace around each label is trimmed; empty segments are dropped.
func ParsePath(s string) Path {
	var p Path
	for _, part := range strings.Split(s, "/") {
		part = strings.TrimSpace(part)
		if part != "" {
			p = append(p, part)
		}
	}
	return p
}
