package tree

import (
	"errors"
	"fmt"
)

// Node is a labeled ordered tree node. Children are owned top-down; Parent is
// a non-owning back-reference maintained for splicing during mutation and
// pruning.
type Node struct {
	Label    int
	Children []*Node
	Parent   *Node
}

func New(label int) *Node {
	return &Node{Label: label}
}

// AddChild appends child as the last child of n and sets its parent link.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

// Clone returns an independent deep copy of the subtree rooted at n.
// The copy's root has no parent.
func (n *Node) Clone() *Node {
	copied := &Node{Label: n.Label}
	for _, child := range n.Children {
		copied.AddChild(child.Clone())
	}
	return copied
}

// Nodes returns the subtree's nodes in pre-order, starting with n itself.
func (n *Node) Nodes() []*Node {
	nodes := []*Node{n}
	for _, child := range n.Children {
		nodes = append(nodes, child.Nodes()...)
	}
	return nodes
}

// Splice removes child from n's children and appends the child's own children
// to n, preserving their relative order. Returns an error if child is not a
// direct child of n.
func (n *Node) Splice(child *Node) error {
	at := -1
	for i, c := range n.Children {
		if c == child {
			at = i
			break
		}
	}
	if at < 0 {
		return errors.New("node is not a child of this parent")
	}
	n.Children = append(n.Children[:at], n.Children[at+1:]...)
	for _, grandchild := range child.Children {
		n.AddChild(grandchild)
	}
	child.Children = nil
	child.Parent = nil
	return nil
}

// Equal reports whether two subtrees have the same labels and shape.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Label != other.Label || len(n.Children) != len(other.Children) {
		return false
	}
	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Validate checks the structural invariants of the tree rooted at n: n has no
// parent, and every other node's parent link points at the node that owns it.
func (n *Node) Validate() error {
	if n.Parent != nil {
		return errors.New("root has a parent")
	}
	seen := map[*Node]bool{}
	return validate(n, seen)
}

func validate(n *Node, seen map[*Node]bool) error {
	if seen[n] {
		return fmt.Errorf("node with label %d reachable twice", n.Label)
	}
	seen[n] = true
	for _, child := range n.Children {
		if child.Parent != n {
			return fmt.Errorf("child with label %d has a stale parent link", child.Label)
		}
		if err := validate(child, seen); err != nil {
			return err
		}
	}
	return nil
}
