package gen

import (
	"fmt"
	"math/rand"

	"github.com/LukMRVC/treegen/pkg/tree"
)

// Derive returns a mutated deep copy of base together with the number of
// edits charged against the budget. The base tree is never touched.
//
// The tree is visited pre-order. At every node an independent draw against
// similarity decides whether to edit: a draw above similarity triggers one or
// two edit operations, chosen by weights, as long as the shared budget of
// maxEdits across the whole traversal is not exhausted. similarity 1.0 can
// never be exceeded by a [0,1) draw, so it yields an identical copy.
func Derive(rng *rand.Rand, base *tree.Node, similarity float64, labels []int, maxEdits int, weights EditWeights) (*tree.Node, int, error) {
	if similarity < 0 || similarity > 1 {
		return nil, 0, fmt.Errorf("similarity must be in [0,1], got %g", similarity)
	}
	if len(labels) == 0 {
		return nil, 0, fmt.Errorf("label alphabet is empty")
	}
	if maxEdits < 0 {
		return nil, 0, fmt.Errorf("max edits must be non-negative, got %d", maxEdits)
	}
	if weights.total() <= 0 {
		return nil, 0, fmt.Errorf("edit weights sum to %d, need at least one positive weight", weights.total())
	}

	m := &mutator{
		rng:        rng,
		similarity: similarity,
		labels:     labels,
		budget:     maxEdits,
		weights:    weights,
	}
	derived := base.Clone()
	m.visit(derived)
	return derived, m.applied, nil
}

type mutator struct {
	rng        *rand.Rand
	similarity float64
	labels     []int
	weights    EditWeights
	budget     int
	applied    int
}

func (m *mutator) visit(n *tree.Node) {
	if m.rng.Float64() > m.similarity && m.applied < m.budget {
		edits := 1 + m.rng.Intn(2)
		for i := 0; i < edits && m.applied < m.budget; i++ {
			m.edit(n)
		}
	}
	// Children are revisited live: a leaf inserted above is mutated like any
	// other node, and promoted grandchildren are not skipped.
	for i := 0; i < len(n.Children); i++ {
		m.visit(n.Children[i])
	}
}

func (m *mutator) edit(n *tree.Node) {
	pick := m.rng.Intn(m.weights.total())
	switch {
	case pick < m.weights.Relabel:
		n.Label = m.randomLabel()
	case pick < m.weights.Relabel+m.weights.InsertLeaf:
		n.AddChild(tree.New(m.randomLabel()))
	default:
		// Delete-and-promote: splice out a random child, its children become
		// direct children of n. On a childless node the operation has nothing
		// to remove, but it was drawn and still consumes budget.
		if len(n.Children) > 0 {
			child := n.Children[m.rng.Intn(len(n.Children))]
			if err := n.Splice(child); err != nil {
				return
			}
		}
	}
	m.applied++
}

func (m *mutator) randomLabel() int {
	return m.labels[m.rng.Intn(len(m.labels))]
}
