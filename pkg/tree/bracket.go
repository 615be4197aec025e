package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize renders the tree in bracket notation: "{label}" for a leaf,
// "{label{child1}{child2}...}" otherwise, with no separators. The number of
// '{' characters in the output equals the node count, which downstream
// tooling relies on to recover tree sizes without parsing.
func Serialize(n *Node) string {
	var b strings.Builder
	serialize(n, &b)
	return b.String()
}

func serialize(n *Node, b *strings.Builder) {
	b.WriteByte('{')
	b.WriteString(strconv.Itoa(n.Label))
	for _, child := range n.Children {
		serialize(child, b)
	}
	b.WriteByte('}')
}

// CountNodes returns the node count of a serialized tree by counting opening
// braces.
func CountNodes(serialized string) int {
	return strings.Count(serialized, "{")
}

// Parse reconstructs a tree from bracket notation produced by Serialize.
func Parse(s string) (*Node, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty input")
	}

	var root *Node
	var current *Node
	pos := 0
	for pos < len(s) {
		switch s[pos] {
		case '{':
			pos++
			start := pos
			for pos < len(s) && s[pos] != '{' && s[pos] != '}' {
				pos++
			}
			label, err := strconv.Atoi(s[start:pos])
			if err != nil {
				return nil, fmt.Errorf("invalid label %q at offset %d", s[start:pos], start)
			}
			node := New(label)
			if current == nil {
				if root != nil {
					return nil, fmt.Errorf("multiple roots at offset %d", pos)
				}
				root = node
			} else {
				current.AddChild(node)
			}
			current = node
		case '}':
			if current == nil {
				return nil, fmt.Errorf("unbalanced '}' at offset %d", pos)
			}
			current = current.Parent
			pos++
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", s[pos], pos)
		}
	}
	if current != nil {
		return nil, fmt.Errorf("unbalanced '{': %d nodes left open", depth(current))
	}
	if root == nil {
		return nil, fmt.Errorf("no tree in input")
	}
	return root, nil
}

func depth(n *Node) int {
	d := 1
	for n.Parent != nil {
		n = n.Parent
		d++
	}
	return d
}
