package domain

// NodeKind tags which variant a Node holds.
type NodeKind int

const (
	// KindBranch maps labels to child nodes.
	KindBranch NodeKind = iota
	// KindLeaf is a terminal, executable operation.
	KindLeaf
)

func (k NodeKind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is an element of the command tree.
// Exactly one of Children (for KindBranch) or Leaf (for KindLeaf) is meaningful.
type Node struct {
	Kind NodeKind

	// Children holds the labelled sub-nodes of a branch, in display order.
	Children []Child

	// Leaf holds the operation of a leaf node.
	Leaf *Leaf
}

// Child is one labelled entry of a branch.
type Child struct {
	Label string
	Node  *Node
}

// Leaf is a terminal operation.
//
// A leaf with Escalate == false is a simple leaf: Command runs verbatim.
// A leaf with Escalate == true is an escalating leaf: Command carries the
// broadcast-capable invocation and is rehearsed (with the broadcast flag
// stripped) before the real run.
type Leaf struct {
	Command  string `json:"cmd" yaml:"cmd" mapstructure:"cmd"`
	Escalate bool   `json:"dry_run_first,omitempty" yaml:"dry_run_first,omitempty" mapstructure:"dry_run_first"`
}

// NewBranch creates a branch node from labelled children.
func NewBranch(children ...Child) *Node {
	return &Node{Kind: KindBranch, Children: children}
}

// NewLeaf creates a simple leaf.
func NewLeaf(command string) *Node {
	return &Node{Kind: KindLeaf, Leaf: &Leaf{Command: command}}
}

// NewEscalatingLeaf creates a leaf that requires dry-run escalation.
func NewEscalatingLeaf(command string) *Node {
	return &Node{Kind: KindLeaf, Leaf: &Leaf{Command: command, Escalate: true}}
}

// Branch is shorthand for a Child entry, used when building trees in code.
func Branch(label string, node *Node) Child {
	return Child{Label: label, Node: node}
}

// IsLeaf reports whether the node is a terminal operation.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == KindLeaf
}

// Child returns the sub-node registered under label.
func (n *Node) Child(label string) (*Node, bool) {
	if n == nil || n.Kind != KindBranch {
		return nil, false
	}
	for _, c := range n.Children {
		if c.Label == label {
			return c.Node, true
		}
	}
	return nil, false
}

// Labels returns the branch labels in display order.
func (n *Node) Labels() []string {
	if n == nil || n.Kind != KindBranch {
		return nil
	}
	labels := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		labels = append(labels, c.Label)
	}
	return labels
}
